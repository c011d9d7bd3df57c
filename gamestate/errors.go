package gamestate

import (
	"github.com/rotisserie/eris"
)

var (
	ErrEntityNotFound       = eris.New("entity not found")
	ErrComponentNotOnEntity = eris.New("component not on entity")
	ErrItemNotInInventory   = eris.New("item not in inventory")
)
