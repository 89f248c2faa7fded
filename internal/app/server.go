package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/PortfolioApp/internal/auth"
	"github.com/GoArmGo/PortfolioApp/internal/config"
	"github.com/GoArmGo/PortfolioApp/internal/handler"
	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// runServer запускает HTTP сервер с маршрутами /api.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	authUseCase usecase.AuthUseCase,
	profileUseCase usecase.ProfileUseCase,
	tokenService *auth.TokenService,
) error {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	profileHandler := handler.NewProfileHandler(authUseCase, profileUseCase, logger)
	authMW := handler.NewAuthMiddleware(tokenService, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health(logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/token", profileHandler.Token)

			r.Group(func(r chi.Router) {
				r.Use(authMW.VerifyToken)
				r.With(authMW.AllowPublic).Get("/getMyProfile", profileHandler.GetMyProfile)
				r.With(authMW.RequireUser).Put("/saveUpdateMyProfile", profileHandler.SaveUpdateMyProfile)
				r.Get("/me/resume", profileHandler.DownloadResume)
			})
		})
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
