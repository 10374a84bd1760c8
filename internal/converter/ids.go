package converter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/spare-parts/internal/model"
)

const syntheticTokenLen = 9

// RandomIDs issues "<category>-<token>" ids that differ on every load.
type RandomIDs struct{}

func (RandomIDs) NewID(category string, _ int, _ model.RawRow) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return category + "-" + token[:syntheticTokenLen]
}

// StableIDs derives the token from the row ordinal and content, so an unchanged
// source yields the same ids on every load.
type StableIDs struct{}

func (StableIDs) NewID(category string, ordinal int, row model.RawRow) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(ordinal)))

	keys := lo.Keys(row)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "|%s=%v", k, row[k])
	}

	return category + "-" + hex.EncodeToString(h.Sum(nil))[:syntheticTokenLen]
}
