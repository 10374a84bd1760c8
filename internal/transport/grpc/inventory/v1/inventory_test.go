package grpc

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/spare-parts/internal/converter"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/repository/snapshot"
	"github.com/you-humble/spare-parts/internal/service/inventory"
	"github.com/you-humble/spare-parts/internal/transport/grpc/interceptors"
)

type staticLoader struct {
	snap *model.Snapshot
}

func (l staticLoader) Load(context.Context) *model.Snapshot { return l.snap }

func testSnapshot() *model.Snapshot {
	n := converter.NewNormalizer(nil)
	loadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := []model.RawRow{
		{"Part Code": "A1", "Equipment Category": "PCT", "Part Name": "Main Pump Assembly", "Current Stock": 5, "Min Required": 10, "Unit Cost": 2.0},
		{"Part Code": "S7", "Equipment Category": "PCT", "Part Name": "Seal Kit", "Current Stock": 0, "Min Required": 1, "Unit Cost": 5.0},
		{"Part Code": "B2", "Equipment Category": "COMMON_PARTS", "Part Name": "Bolt", "Current Stock": 30, "Min Required": 5, "Unit Cost": 1.0},
	}

	snap := &model.Snapshot{LoadedAt: loadedAt, Source: "inventory.xlsx"}
	for i, r := range rows {
		snap.Records = append(snap.Records, n.RecordFromRow(r, i, loadedAt))
	}
	return snap
}

func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()

	snap := testSnapshot()
	store := snapshot.NewStore(snap.Source)
	store.Swap(snap)
	svc := inventory.NewInventoryService(staticLoader{snap: snap}, store, nil, nil)

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.UnaryLogging(),
		interceptors.UnaryRecovery(),
	))
	RegisterInventoryServiceServer(server, NewInventoryHandler(svc))
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestInventoryGRPC(t *testing.T) {
	t.Parallel()

	conn := dial(t)
	ctx := context.Background()

	t.Run("get part", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"id": "A1"})
		require.NoError(t, err)

		out := &structpb.Struct{}
		require.NoError(t, conn.Invoke(ctx, FullMethod(MethodGetPart), req, out))
		assert.Equal(t, "Main Pump Assembly", out.GetFields()[model.FieldPartName].GetStringValue())
		assert.Equal(t, string(model.StockLevelLow), out.GetFields()[model.FieldStockLevel].GetStringValue())
	})

	t.Run("get part not found", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{"id": "missing"})
		require.NoError(t, err)

		err = conn.Invoke(ctx, FullMethod(MethodGetPart), req, &structpb.Struct{})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("get part empty id", func(t *testing.T) {
		err := conn.Invoke(ctx, FullMethod(MethodGetPart), &structpb.Struct{}, &structpb.Struct{})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("list parts with out of range paging", func(t *testing.T) {
		for _, page := range []float64{1e18, math.MaxFloat64, math.Inf(1), math.NaN()} {
			req := &structpb.Struct{Fields: map[string]*structpb.Value{
				converter.KeyPage:  structpb.NewNumberValue(page),
				converter.KeyLimit: structpb.NewNumberValue(1e18),
			}}

			out := &structpb.Struct{}
			require.NoError(t, conn.Invoke(ctx, FullMethod(MethodListParts), req, out))

			pagination := out.GetFields()["pagination"].GetStructValue().GetFields()
			assert.EqualValues(t, 3, pagination["total"].GetNumberValue())
			assert.EqualValues(t, 1, pagination["totalPages"].GetNumberValue())
		}
	})

	t.Run("list parts filtered", func(t *testing.T) {
		req, err := structpb.NewStruct(map[string]any{
			converter.KeyEquipment: "PCT",
			converter.KeySortBy:    string(model.SortFieldCurrentStock),
			converter.KeyLimit:     1,
		})
		require.NoError(t, err)

		out := &structpb.Struct{}
		require.NoError(t, conn.Invoke(ctx, FullMethod(MethodListParts), req, out))

		data := out.GetFields()["data"].GetListValue().GetValues()
		require.Len(t, data, 1)
		assert.Equal(t, "S7", data[0].GetStructValue().GetFields()[model.FieldPartCode].GetStringValue())

		pagination := out.GetFields()["pagination"].GetStructValue().GetFields()
		assert.EqualValues(t, 2, pagination["total"].GetNumberValue())
		assert.EqualValues(t, 2, pagination["totalPages"].GetNumberValue())
	})

	t.Run("summarize", func(t *testing.T) {
		out := &structpb.Struct{}
		require.NoError(t, conn.Invoke(ctx, FullMethod(MethodSummarize), &emptypb.Empty{}, out))
		assert.EqualValues(t, 3, out.GetFields()["totalParts"].GetNumberValue())
		assert.EqualValues(t, 1, out.GetFields()["outOfStock"].GetNumberValue())
	})

	t.Run("list categories", func(t *testing.T) {
		out := &structpb.ListValue{}
		require.NoError(t, conn.Invoke(ctx, FullMethod(MethodListCategories), &emptypb.Empty{}, out))
		assert.Equal(t, []any{"COMMON_PARTS", "PCT"}, out.AsSlice())
	})

	t.Run("reload", func(t *testing.T) {
		out := &structpb.Struct{}
		require.NoError(t, conn.Invoke(ctx, FullMethod(MethodReload), &emptypb.Empty{}, out))
		assert.EqualValues(t, 3, out.GetFields()["count"].GetNumberValue())
		assert.Equal(t, "inventory.xlsx", out.GetFields()["source"].GetStringValue())
	})
}
