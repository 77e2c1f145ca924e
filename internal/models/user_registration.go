package models

import "time"

// UserRegistration 注册用户表
type UserRegistration struct {
	Username     string     `gorm:"type:varchar(50);primarykey" json:"username"`   // 用户名
	FirstName    string     `gorm:"type:varchar(100)" json:"firstname"`            // 名
	LastName     string     `gorm:"type:varchar(100)" json:"lastname"`             // 姓
	DOB          *time.Time `gorm:"type:date" json:"dob"`                          // 出生日期
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`           // 密码哈希（bcrypt）
	Email        string     `gorm:"type:varchar(255)" json:"email"`                // 邮箱
	Phone        string     `gorm:"type:varchar(30)" json:"phone"`                 // 电话
	Address      string     `gorm:"type:varchar(255)" json:"address"`              // 地址
	Category     string     `gorm:"type:varchar(100)" json:"category"`             // 用户分类
	CreatedAt    time.Time  `json:"created_date"`                                  // 注册时间
}

// TableName 指定表名
func (UserRegistration) TableName() string {
	return "user_registrations"
}
