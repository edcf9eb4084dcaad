package listing

import (
	"fmt"
	"strings"
	"time"
)

// Condition is the physical condition of a listed item.
type Condition string

// Supported item conditions.
const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// Conditions enumerates all valid conditions in display order.
func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}
}

// ParseCondition validates a condition string.
func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return c, nil
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Status is the lifecycle state of a listing.
type Status string

// Listing lifecycle states. Only active listings are searchable.
const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusInactive Status = "inactive"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusActive, StatusSold, StatusInactive:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Listing is a marketplace item offered for sale.
type Listing struct {
	id          string
	title       string
	description string
	price       float64
	categoryID  string
	condition   Condition
	location    string
	state       string
	status      Status
	images      []string
	sellerID    string
	createdAt   time.Time
}

// New validates and creates an active Listing stamped with the current time.
func New(
	id, title, description string, price float64,
	categoryID string, condition Condition,
	location, state string, images []string, sellerID string,
) (Listing, error) {
	if strings.TrimSpace(id) == "" {
		return Listing{}, fmt.Errorf("listing id is required")
	}
	if strings.TrimSpace(title) == "" {
		return Listing{}, fmt.Errorf("listing title is required")
	}
	if price < 0 {
		return Listing{}, fmt.Errorf("price must not be negative, got %g", price)
	}
	if strings.TrimSpace(categoryID) == "" {
		return Listing{}, fmt.Errorf("category id is required")
	}
	if _, err := ParseCondition(string(condition)); err != nil {
		return Listing{}, err
	}

	return Listing{
		id:          id,
		title:       strings.TrimSpace(title),
		description: description,
		price:       price,
		categoryID:  categoryID,
		condition:   condition,
		location:    strings.TrimSpace(location),
		state:       strings.TrimSpace(state),
		status:      StatusActive,
		images:      append([]string(nil), images...),
		sellerID:    sellerID,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Listing from stored fields without validation.
func Reconstruct(
	id, title, description string, price float64,
	categoryID string, condition Condition,
	location, state string, status Status,
	images []string, sellerID string, createdAt time.Time,
) Listing {
	return Listing{
		id:          id,
		title:       title,
		description: description,
		price:       price,
		categoryID:  categoryID,
		condition:   condition,
		location:    location,
		state:       state,
		status:      status,
		images:      images,
		sellerID:    sellerID,
		createdAt:   createdAt,
	}
}

// ID returns the listing identifier.
func (l Listing) ID() string { return l.id }

// Title returns the listing title.
func (l Listing) Title() string { return l.title }

// Description returns the listing description.
func (l Listing) Description() string { return l.description }

// Price returns the asking price.
func (l Listing) Price() float64 { return l.price }

// CategoryID returns the category identifier.
func (l Listing) CategoryID() string { return l.categoryID }

// Condition returns the item condition.
func (l Listing) Condition() Condition { return l.condition }

// Location returns the free-text city/area.
func (l Listing) Location() string { return l.location }

// State returns the state/region.
func (l Listing) State() string { return l.state }

// Status returns the lifecycle state.
func (l Listing) Status() Status { return l.status }

// Images returns the image URLs.
func (l Listing) Images() []string { return l.images }

// SellerID returns the seller identifier.
func (l Listing) SellerID() string { return l.sellerID }

// CreatedAt returns the creation timestamp.
func (l Listing) CreatedAt() time.Time { return l.createdAt }

// WithStatus returns a copy of the listing with the given status.
func (l Listing) WithStatus(s Status) Listing {
	l.status = s
	return l
}
