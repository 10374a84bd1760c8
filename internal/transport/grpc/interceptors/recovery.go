package interceptors

import (
	"context"
	"path"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/you-humble/spare-parts/platform/logger"
)

// UnaryRecovery turns a panic in a handler into codes.Internal so one request
// cannot take the server down.
func UnaryRecovery() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(ctx, "Recovered from panic in grpc handler",
					logger.String("method", path.Base(info.FullMethod)),
					logger.Any("panic", r),
				)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}
