package interceptors

import (
	"context"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you-humble/spare-parts/platform/logger"
)

func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		method := path.Base(info.FullMethod)
		start := time.Now()

		resp, err := handler(ctx, req)

		d := time.Since(start)
		code := status.Code(err)
		fields := []logger.Field{
			logger.String("method", method),
			logger.String("code", code.String()),
			logger.Duration("dur", d),
		}

		switch {
		case err == nil:
			logger.Info(ctx, "grpc", fields...)
		case code == codes.Internal || code == codes.Unknown:
			logger.Error(ctx, "grpc", append(fields, logger.ErrorF(err))...)
		default:
			logger.Warn(ctx, "grpc", append(fields, logger.ErrorF(err))...)
		}

		return resp, err
	}
}
