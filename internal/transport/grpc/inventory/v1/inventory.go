package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/spare-parts/internal/converter"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/logger"
)

type InventoryService interface {
	Reload(ctx context.Context) *model.Snapshot
	Query(ctx context.Context, c model.Criteria) model.Page
	Summarize(ctx context.Context) model.Stats
	Categories(ctx context.Context) []string
	PartByID(ctx context.Context, id string) (model.Record, error)
}

type handler struct {
	svc InventoryService
}

func NewInventoryHandler(service InventoryService) *handler {
	return &handler{svc: service}
}

// GetPart expects {"id": "<part id>"}.
func (h *handler) GetPart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rec, err := h.svc.PartByID(ctx, req.GetFields()["id"].GetStringValue())
	if err != nil {
		return nil, mapError(ctx, err)
	}

	out, err := converter.PartToStruct(rec)
	if err != nil {
		return nil, mapError(ctx, err)
	}
	return out, nil
}

func (h *handler) ListParts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page := h.svc.Query(ctx, converter.CriteriaFromStruct(req))

	out, err := converter.PageToStruct(page)
	if err != nil {
		return nil, mapError(ctx, err)
	}
	return out, nil
}

func (h *handler) Summarize(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := converter.StatsToStruct(h.svc.Summarize(ctx))
	if err != nil {
		return nil, mapError(ctx, err)
	}
	return out, nil
}

func (h *handler) ListCategories(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	cats := h.svc.Categories(ctx)

	values := make([]*structpb.Value, len(cats))
	for i, c := range cats {
		values[i] = structpb.NewStringValue(c)
	}
	return &structpb.ListValue{Values: values}, nil
}

func (h *handler) Reload(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return converter.SnapshotInfoToStruct(h.svc.Reload(ctx)), nil
}

func mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		return status.Error(codes.NotFound, "part not found")
	default:
		logger.Error(ctx, "grpc handler failed", logger.ErrorF(err))
		return status.Error(codes.Internal, "internal error")
	}
}
