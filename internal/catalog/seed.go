package catalog

import "github.com/cybermarket/server/internal/domain"

// defaultProducts is the embedded product list used to seed an empty catalog.
func defaultProducts() []domain.Item {
	return []domain.Item{
		{
			Name:     "M-179 ACHILLES",
			Category: domain.CategoryWeapon,
			Price:    12500,
			Rarity:   domain.RarityEpic,
			Stats: map[string]string{
				"damage": "350-420",
				"rpm":    "600",
				"weight": "4.5kg",
			},
			Description: "Militech's flagship electromagnetic precision rifle. Capable of piercing light cover and neutralizing targets at extreme ranges.",
		},
		{
			Name:     "ARASAKA MK.IV",
			Category: domain.CategoryImplant,
			Price:    45000,
			Rarity:   domain.RarityLegendary,
			Stats: map[string]string{
				"slot":     "Cortex",
				"ram":      "+4",
				"cooldown": "-15%",
			},
			Description: "Top-of-the-line cyberdeck from Arasaka. Optimized for quickhacking and daemon deployment.",
		},
		{
			Name:        "OPTICAL CAMO",
			Category:    domain.CategoryGear,
			Subcategory: domain.SubcategoryTactical,
			Price:       8500,
			Rarity:      domain.RarityRare,
			Stats: map[string]string{
				"duration":   "15s",
				"visibility": "0%",
				"recharge":   "45s",
			},
			Description: "Thermoptic camouflage system that bends light around the user, rendering them nearly invisible to the naked eye.",
		},
		{
			Name:     "MONOWIRE",
			Category: domain.CategoryWeapon,
			Price:    22000,
			Rarity:   domain.RarityEpic,
			Stats: map[string]string{
				"damage": "280",
				"reach":  "5m",
				"speed":  "Very Fast",
			},
			Description: "A single molecule thick fiber optic wire. Can slice through bone and metal with ease.",
		},
		{
			Name:     "KERENZIKOV",
			Category: domain.CategoryImplant,
			Price:    32000,
			Rarity:   domain.RarityLegendary,
			Stats: map[string]string{
				"slowmo":   "90%",
				"duration": "3.5s",
				"reflex":   "+5",
			},
			Description: "Reflex booster that allows the user to move and react at superhuman speeds during combat.",
		},
		{
			Name:     "TITANIUM BONES",
			Category: domain.CategoryImplant,
			Price:    15000,
			Rarity:   domain.RarityRare,
			Stats: map[string]string{
				"capacity": "+60%",
				"armor":    "+200",
				"fall_dmg": "-40%",
			},
			Description: "Reinforced skeletal structure capable of withstanding immense pressure and impact.",
		},
		{
			Name:     "UNITY",
			Category: domain.CategoryWeapon,
			Price:    4500,
			Rarity:   domain.RarityCommon,
			Stats: map[string]string{
				"damage": "80-100",
				"rpm":    "350",
				"slots":  "2",
			},
			Description: "Reliable and affordable semi-automatic pistol. A favorite among street punks and mercenaries alike.",
		},
		{
			Name:        "MAXDOC MK.3",
			Category:    domain.CategoryGear,
			Subcategory: domain.SubcategoryTactical,
			Price:       500,
			Rarity:   domain.RarityCommon,
			Stats: map[string]string{
				"heal":    "80%",
				"instant": "Yes",
				"weight":  "0.2kg",
			},
			Description: "Advanced medical inhaler for rapid trauma response. Instantly seals wounds and stimulates cell regeneration.",
		},
	}
}
