package repository

import (
	"context"

	"github.com/user/threat-log-analyzer/internal/entity"
)

// ThreatFeedRepository defines the contract for retrieving the threat listing.
type ThreatFeedRepository interface {
	// FetchThreats loads the page at url and scrapes its threat table.
	FetchThreats(ctx context.Context, url string) (entity.ThreatMapping, error)
}
