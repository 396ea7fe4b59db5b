package model

// Store 店铺
// AvgRating 是派生缓存值，只允许聚合逻辑写入，
// 必须始终等于该店铺评分的算术平均值（保留两位小数），无评分时为 0
type Store struct {
	BaseModel
	Name    string `gorm:"size:60;not null" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Address string `gorm:"size:400;not null" json:"address"`

	OwnerID string `gorm:"type:uuid;index;not null" json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	AvgRating float64 `gorm:"not null;default:0" json:"avgRating"`

	Ratings []Rating `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
