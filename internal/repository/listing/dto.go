package listing

import (
	"encoding/json"
	"strconv"
	"time"

	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// buildHashFields converts a domain Listing plus its seq into a flat
// map[string]string for HSET. The id is duplicated into a field because
// FT.AGGREGATE rows carry loaded attributes, not the document key.
func buildHashFields(l domlst.Listing, seq int64) map[string]string {
	m := map[string]string{
		"id":          l.ID(),
		"title":       l.Title(),
		"description": l.Description(),
		"price":       strconv.FormatFloat(l.Price(), 'f', -1, 64),
		"category_id": l.CategoryID(),
		"condition":   string(l.Condition()),
		"location":    l.Location(),
		"state":       l.State(),
		"status":      string(l.Status()),
		"seller_id":   l.SellerID(),
		"created_at":  strconv.FormatInt(l.CreatedAt().UnixMilli(), 10),
		"seq":         strconv.FormatInt(seq, 10),
	}
	if imgs := l.Images(); len(imgs) > 0 {
		if data, err := json.Marshal(imgs); err == nil {
			m["images"] = string(data)
		}
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Listing.
// Unparseable numerics fall back to zero values rather than failing the
// whole row.
func parseHashFields(m map[string]string) domlst.Listing {
	price, _ := strconv.ParseFloat(m["price"], 64)

	var createdAt time.Time
	if millis, err := strconv.ParseInt(m["created_at"], 10, 64); err == nil {
		createdAt = time.UnixMilli(millis).UTC()
	}

	var images []string
	if raw := m["images"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &images)
	}

	return domlst.Reconstruct(
		m["id"], m["title"], m["description"], price,
		m["category_id"], domlst.Condition(m["condition"]),
		m["location"], m["state"], domlst.Status(m["status"]),
		images, m["seller_id"], createdAt,
	)
}

// parseSeq extracts the stored write-order counter, 0 when absent.
func parseSeq(m map[string]string) int64 {
	seq, _ := strconv.ParseInt(m["seq"], 10, 64)
	return seq
}
