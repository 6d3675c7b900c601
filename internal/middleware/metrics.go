package middleware

import (
	"net/http"
	"time"
)

// HTTPMetrics はリクエストメトリクスの記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type HTTPMetrics interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}

// NewMetricsMiddleware はリクエストごとの件数とレイテンシを記録するミドルウェアを返す。
func NewMetricsMiddleware(collector HTTPMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPRequest(r.Method, rec.statusCode, time.Since(start))
		})
	}
}
