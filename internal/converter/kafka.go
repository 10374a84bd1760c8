package converter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/spare-parts/internal/model"
)

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) SnapshotLoadedToPayload(e model.SnapshotLoaded) ([]byte, error) {
	const op = "converter.SnapshotLoadedToPayload"

	s, err := structpb.NewStruct(map[string]any{
		"eventId":    e.EventID.String(),
		"source":     e.Source,
		"records":    e.Records,
		"outOfStock": e.OutOfStock,
		"lowStock":   e.LowStock,
		"totalValue": e.TotalValue,
		"loadedAt":   e.LoadedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := proto.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload, nil
}

func (c *kafkaConverter) SnapshotLoadedFromPayload(payload []byte) (model.SnapshotLoaded, error) {
	const op = "converter.SnapshotLoadedFromPayload"

	var s structpb.Struct
	if err := proto.Unmarshal(payload, &s); err != nil {
		return model.SnapshotLoaded{}, fmt.Errorf("%s: %w", op, err)
	}
	f := s.GetFields()

	id, err := uuid.Parse(f["eventId"].GetStringValue())
	if err != nil {
		return model.SnapshotLoaded{}, fmt.Errorf("%s: event id: %w", op, err)
	}
	loadedAt, err := time.Parse(time.RFC3339Nano, f["loadedAt"].GetStringValue())
	if err != nil {
		return model.SnapshotLoaded{}, fmt.Errorf("%s: loaded at: %w", op, err)
	}

	return model.SnapshotLoaded{
		EventID:    id,
		Source:     f["source"].GetStringValue(),
		Records:    int(f["records"].GetNumberValue()),
		OutOfStock: int(f["outOfStock"].GetNumberValue()),
		LowStock:   int(f["lowStock"].GetNumberValue()),
		TotalValue: f["totalValue"].GetNumberValue(),
		LoadedAt:   loadedAt,
	}, nil
}
