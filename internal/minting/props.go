package minting

import (
	"fmt"

	"github.com/big-riz/HandcashIntegration/pkg/handcash"
)

const defaultItemImageURL = "https://res.cloudinary.com/dcerwavw6/image/upload/v1731101495/bober.exe_to3xyg.png"

var (
	editions = []string{"Genesis", "Limited", "Standard", "Open"}
	rarities = []string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}
)

// ItemProps describes the collectible to mint.
type ItemProps struct {
	Name        string
	Description string
	ImageURL    string
	Rarity      string
	Attributes  []handcash.ItemAttribute
	TokenSupply int
}

// ItemPropsFromSeed derives deterministic item properties from a seed value.
// The same seed always yields the same name, rarity, and edition.
func ItemPropsFromSeed(seed, tokenSupply int) ItemProps {
	if seed < 0 {
		seed = -seed
	}
	if tokenSupply <= 0 {
		tokenSupply = 1
	}
	rarity := rarities[seed%len(rarities)]
	edition := editions[(seed/len(rarities))%len(editions)]
	return ItemProps{
		Name:        fmt.Sprintf("Collectible #%d", seed),
		Description: fmt.Sprintf("%s edition collectible generated from seed %d", edition, seed),
		ImageURL:    defaultItemImageURL,
		Rarity:      rarity,
		Attributes: []handcash.ItemAttribute{
			{Name: "Edition", Value: edition, DisplayType: "string"},
			{Name: "Generation", Value: "1", DisplayType: "string"},
			{Name: "Seed", Value: fmt.Sprintf("%d", seed), DisplayType: "string"},
		},
		TokenSupply: tokenSupply,
	}
}
