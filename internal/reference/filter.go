// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reference manages the kinase-substrate annotation set: source
// filtering, a local SQLite store, and remote dataset download.
// See docs/ARCHITECTURE § Reference Set.
package reference

import (
	"github.com/pdiddy/kinact/pkg/types"
)

// Filter selects the annotation rows eligible for the evidence join.
//
// With NetworKIN predictions enabled, only rows tagged as NetworKIN
// predictions whose score meets the cutoff are kept; curated rows are
// excluded even though they would trivially "pass" any score test.
// Otherwise only curated PhosphoSitePlus rows are kept. Enabling
// predictions without a cutoff is a configuration error.
func Filter(anns []types.Annotation, cfg types.ReferenceConfig) ([]types.Annotation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var kept []types.Annotation
	for _, a := range anns {
		if eligible(a, cfg) {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

// eligible reports whether a single annotation passes the source
// policy. A NaN score never satisfies the cutoff, so curated rows that
// leaked a NetworKIN tag without a score are excluded.
func eligible(a types.Annotation, cfg types.ReferenceConfig) bool {
	if cfg.UseNetworKIN {
		return a.Source == types.SourceNetworKIN && a.NetworKINScore >= cfg.NetworKINCutoff
	}
	return a.Source == types.SourcePhosphoSitePlus
}
