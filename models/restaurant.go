package models

type Restaurant struct {
	Base
	OwnerID     string     `json:"ownerId" gorm:"index;not null"`
	Owner       *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string     `json:"name" gorm:"not null"`
	Cuisine     string     `json:"cuisine"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	IsOpen      bool       `json:"isOpen" gorm:"default:true"`
	Rating      float64    `json:"rating" gorm:"default:0"`
	MenuItems   []MenuItem `json:"menuItems,omitempty" gorm:"foreignKey:RestaurantID"`
}

// RestaurantSummary is the name/address projection used by order tracking.
type RestaurantSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type MenuItem struct {
	Base
	RestaurantID string  `json:"restaurantId" gorm:"index;not null"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" gorm:"not null"`
	Category     string  `json:"category"`
	IsAvailable  bool    `json:"isAvailable" gorm:"default:true"`
	IsVeg        bool    `json:"isVeg" gorm:"default:false"`
}
