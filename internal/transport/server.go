package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewGRPCServer builds the gRPC server with the standard interceptor chain and
// a health service. The health status starts as NOT_SERVING.
func NewGRPCServer(logger *zap.Logger) (*grpc.Server, *health.Server) {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}

// NewGateway builds the REST mux. /healthz is answered by the gRPC health service
// listening on grpcAddr.
func NewGateway(grpcAddr string, handler *RuleHandler) (*gwruntime.ServeMux, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial grpc %s: %w", grpcAddr, err)
	}

	gw := gwruntime.NewServeMux(
		gwruntime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)),
	)
	if err := handler.Register(gw); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return gw, conn, nil
}

// NewHTTPServer serves gw and the prometheus endpoint on addr.
func NewHTTPServer(addr string, gw http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}

// Shutdown stops the servers once ctx is done.
func Shutdown(ctx context.Context, logger *zap.Logger, grpcServer *grpc.Server, httpServer *http.Server) {
	<-ctx.Done()

	logger.Info("Shutting down the http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown http server", zap.Error(err))
	}

	logger.Info("Shutting down gRPC server")
	grpcServer.GracefulStop()
}
