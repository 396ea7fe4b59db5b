package model

// ==================== 角色定义 ====================

// Role 系统角色，封闭枚举，禁止自由字符串
type Role string

const (
	RoleNormalUser  Role = "NORMAL_USER"
	RoleStoreOwner  Role = "STORE_OWNER"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// Valid 判断是否为合法角色
func (r Role) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	}
	return false
}

// ParseRole 解析角色字符串，非法值返回 false
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// ==================== User 用户 ====================

// User 平台用户
// 一个 STORE_OWNER 可以拥有多家店铺；一个 NORMAL_USER 可以给多家店铺评分
type User struct {
	BaseModel
	Name     string `gorm:"size:60;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Address  string `gorm:"size:400;not null" json:"address"`
	Role     Role   `gorm:"size:20;not null;default:'NORMAL_USER'" json:"role"`

	// 关联关系
	OwnedStores []Store  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings     []Rating `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
