// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
	RecordOAuthLogin(provider string, newUser bool)
	RecordDocumentCreated(resource string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	oauthLogins      *prometheus.CounterVec
	documentsCreated *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookbook_http_requests_total",
			Help: "メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cookbook_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		oauthLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookbook_oauth_logins_total",
			Help: "プロバイダ・結果別のOAuthログイン数",
		}, []string{"provider", "result"}),
		documentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cookbook_documents_created_total",
			Help: "リソース種別ごとの作成ドキュメント数",
		}, []string{"resource"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.oauthLogins,
		c.documentsCreated,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエスト1件の結果を記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordOAuthLogin はOAuthログインの成立を記録する。
// newUserは初回ログインでユーザーが新規作成されたかどうか。
func (c *Collector) RecordOAuthLogin(provider string, newUser bool) {
	result := "existing"
	if newUser {
		result = "new"
	}
	c.oauthLogins.WithLabelValues(provider, result).Inc()
}

// RecordDocumentCreated はドキュメント作成を記録する。
// resourceには"recipe"等のリソース名を渡す。
func (c *Collector) RecordDocumentCreated(resource string) {
	c.documentsCreated.WithLabelValues(resource).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
