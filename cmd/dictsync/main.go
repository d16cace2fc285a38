// dictsync 从翻译管理平台拉取品牌词典并生成前端 i18n 文件
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tokmz/dictsync/pkg/errors"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dictsync:", err)
	}
	os.Exit(errors.ExitCode(err))
}
