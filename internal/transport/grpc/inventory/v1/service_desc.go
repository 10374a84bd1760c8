package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Requests and responses are
// well-known protobuf types, so no generated stubs are required on either side.
const ServiceName = "spares.inventory.v1.InventoryService"

const (
	MethodGetPart        = "GetPart"
	MethodListParts      = "ListParts"
	MethodSummarize      = "Summarize"
	MethodListCategories = "ListCategories"
	MethodReload         = "Reload"
)

type InventoryServiceServer interface {
	GetPart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListParts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Summarize(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	ListCategories(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	Reload(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetPart, func() proto.Message { return &structpb.Struct{} },
			func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error) {
				return s.GetPart(ctx, req.(*structpb.Struct))
			}),
		unary(MethodListParts, func() proto.Message { return &structpb.Struct{} },
			func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error) {
				return s.ListParts(ctx, req.(*structpb.Struct))
			}),
		unary(MethodSummarize, func() proto.Message { return &emptypb.Empty{} },
			func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error) {
				return s.Summarize(ctx, req.(*emptypb.Empty))
			}),
		unary(MethodListCategories, func() proto.Message { return &emptypb.Empty{} },
			func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error) {
				return s.ListCategories(ctx, req.(*emptypb.Empty))
			}),
		unary(MethodReload, func() proto.Message { return &emptypb.Empty{} },
			func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error) {
				return s.Reload(ctx, req.(*emptypb.Empty))
			}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spares/inventory/v1/inventory.proto",
}

func unary(
	method string,
	newReq func() proto.Message,
	call func(s InventoryServiceServer, ctx context.Context, req proto.Message) (any, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(InventoryServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(proto.Message))
			})
		},
	}
}
