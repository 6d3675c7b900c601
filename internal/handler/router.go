package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/cookbook/internal/metrics"
	"github.com/hitoshi/cookbook/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// リソース
	RecipeService   RecipeServiceInterface
	CategoryService CategoryServiceInterface
	ReviewService   ReviewServiceInterface
	UserService     UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → SecurityHeaders → CORS → Metrics → SessionLoader → Logging
//
// セッションローダーは全ルートに適用され、認証の強制は
// RequireLogin / RequireAdminをルートグループ単位で適用して行う。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Collector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	}
	r.Use(middleware.NewSessionLoader(deps.SessionFinder))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}

	var loginMetrics LoginMetrics
	var docMetrics DocumentMetrics
	if deps.Collector != nil {
		loginMetrics = deps.Collector
		docMetrics = deps.Collector
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, loginMetrics)
	recipeHandler := NewRecipeHandler(deps.RecipeService, docMetrics)
	categoryHandler := NewCategoryHandler(deps.CategoryService, docMetrics)
	reviewHandler := NewReviewHandler(deps.ReviewService, docMetrics)
	userHandler := NewUserHandler(deps.UserService, docMetrics)

	// --- 運用系ルート ---
	r.Get("/", rootGreeting)
	r.Get("/health", healthCheck)
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証ルート（OAuthフロー） ---
	r.Get("/{provider:github|google}", authHandler.Login)
	r.Get("/{provider:github|google}/callback", authHandler.Callback)
	r.Get("/logout", authHandler.Logout)
	r.Get("/me", authHandler.Me)

	// --- レシピ ---
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeHandler.List)
		r.Get("/{id}", recipeHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Post("/", recipeHandler.Create)
			r.Put("/{id}", recipeHandler.Update)
			r.Delete("/{id}", recipeHandler.Delete)
		})
	})

	// --- カテゴリ ---
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Get("/{id}", categoryHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Post("/", categoryHandler.Create)
			r.Put("/{id}", categoryHandler.Put)
			r.Delete("/{id}", categoryHandler.Delete)
		})
	})

	// --- レビュー ---
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.List)
		r.Get("/{id}", reviewHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Post("/", reviewHandler.Create)
			r.Put("/{id}", reviewHandler.Update)
			r.Delete("/{id}", reviewHandler.Delete)
			r.Post("/{id}/comments", reviewHandler.AddComment)
		})
	})

	// --- ユーザー（閲覧は公開、変更は管理者のみ） ---
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", userHandler.Create)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return r
}

// rootGreeting はログイン状態に応じた挨拶を返す。
// GET /
func rootGreeting(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Hello, %s", session.Name)})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello, Guest"})
}

// healthCheck は死活監視用のエンドポイント。
// GET /health
func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
