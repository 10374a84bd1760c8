//go:build integration

package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/spare-parts/internal/model"
	tcmongo "github.com/you-humble/spare-parts/platform/testcontainers/mongo"
)

func TestMongoOpener(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tcmongo.NewContainer(ctx, tcmongo.WithDatabase("spares"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	db := c.Client().Database("spares")
	updated := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	require.NoError(t, InsertRows(ctx, db.Collection("inventory"), []model.RawRow{
		{"partCode": "A1", "equipmentCategory": "PCT", "currentStock": 5, "lastUpdated": updated},
		{"partCode": "B2", "equipmentCategory": "COMMON_PARTS", "unitCost": 1.5},
	}))
	require.NoError(t, InsertRows(ctx, db.Collection("archive"), []model.RawRow{{"partCode": "Z9"}}))

	wb, err := NewMongoOpener(db).Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "inventory"}, wb.SheetNames())

	rows, err := wb.Rows(ctx, "inventory")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A1", rows[0]["partCode"])
	assert.EqualValues(t, 5, rows[0]["currentStock"])
	assert.Equal(t, updated, rows[0]["lastUpdated"])
	assert.NotContains(t, rows[0], "_id")
	assert.InDelta(t, 1.5, rows[1]["unitCost"], 1e-9)
}
