package model

// Rating 评分记录
// (UserID, StoreID) 上有唯一约束：同一用户对同一店铺至多一条评分，
// 写入走 ON CONFLICT upsert，依赖该约束消除并发重复插入
type Rating struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store" json:"userId"`
	StoreID string `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store" json:"storeId"`

	Rating  int     `gorm:"not null" json:"rating"` // 1-5
	Comment *string `gorm:"size:500" json:"comment"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}
