package request

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// tracingTransport 把当前 Span 以 traceparent 头传给翻译平台
// 每次尝试都新建 http.Request，直接写 Header 不影响重试
type tracingTransport struct {
	next http.RoundTripper
}

func newTracingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return tracingTransport{next: next}
}

func (t tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
	return t.next.RoundTrip(req)
}
