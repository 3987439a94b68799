package matchresult

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// NewSnapshot copies blocks and stamps the payload hash used for de-duplication.
func NewSnapshot(source, teamName string, startYear int, blocks []string, scrapedAt time.Time) Snapshot {
	copied := append([]string(nil), blocks...)
	if copied == nil {
		copied = []string{}
	}
	return Snapshot{
		Source:      source,
		TeamName:    strings.TrimSpace(teamName),
		StartYear:   startYear,
		Blocks:      copied,
		PayloadHash: PayloadHash(copied),
		ScrapedAt:   scrapedAt.UTC(),
	}
}

// PayloadHash is the hex sha256 of the blocks, each terminated by a NUL byte.
func PayloadHash(blocks []string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, block := range blocks {
		_, _ = buf.WriteString(block)
		_ = buf.WriteByte(0)
	}

	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:])
}

// SnapshotKey identifies the scrape a snapshot replays: team names compare case-insensitively.
func SnapshotKey(teamName string, startYear int) string {
	return strings.ToLower(strings.TrimSpace(teamName)) + "|" + strconv.Itoa(startYear)
}
