package core

import (
	"github.com/pantrymcp/pantry-mcp/internal/errors"
	"github.com/pantrymcp/pantry-mcp/internal/security"
)

// Target identifies one basket for the duration of a single call.
type Target struct {
	PantryID   string
	BasketName string
}

// Resolve picks the pantry id and basket name for a call. Non-empty per-call
// values win; empty ones fall back to cfg. It performs no I/O.
func Resolve(cfg *Config, pantryID, basketName string) (Target, error) {
	if pantryID == "" && cfg != nil {
		pantryID = cfg.PantryID
	}
	if basketName == "" && cfg != nil {
		basketName = cfg.BasketName
	}

	switch {
	case pantryID == "" && basketName == "":
		return Target{}, errors.ConfigMissing("pantryId and basketName are")
	case pantryID == "":
		return Target{}, errors.ConfigMissing("pantryId is")
	case basketName == "":
		return Target{}, errors.ConfigMissing("basketName is")
	}

	if err := security.ValidateIdentifier("pantryId", pantryID); err != nil {
		return Target{}, errors.InvalidParams(err.Error())
	}
	if err := security.ValidateIdentifier("basketName", basketName); err != nil {
		return Target{}, errors.InvalidParams(err.Error())
	}

	return Target{PantryID: pantryID, BasketName: basketName}, nil
}
