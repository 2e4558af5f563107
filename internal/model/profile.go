// Package model 定义数据库实体模型
package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Profile 用户资料，同时承载登录凭证
// 对应数据库 profile 表，只有本人可以修改
type Profile struct {
	gorm.Model

	// Uuid 用户唯一标识，格式：U + 日期 + 随机串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	Email    string `gorm:"column:email;uniqueIndex;type:varchar(254);not null;comment:登录邮箱"`
	Password string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt 密码"`

	FullName         string `gorm:"column:full_name;type:varchar(100);comment:姓名"`
	AvatarUrl        string `gorm:"column:avatar_url;type:varchar(512);comment:头像"`
	University       string `gorm:"column:university;type:varchar(200);comment:大学"`
	Institution      string `gorm:"column:institution;type:varchar(200);comment:机构"`
	Bio              string `gorm:"column:bio;type:TEXT;comment:个人简介"`
	StartupVision    string `gorm:"column:startup_vision;type:TEXT;comment:创业愿景"`
	IndustryVertical string `gorm:"column:industry_vertical;type:varchar(100);comment:行业"`
	Skills           string `gorm:"column:skills;type:TEXT;comment:技能，逗号分隔"`
	CofounderType    string `gorm:"column:cofounder_type;type:varchar(20);comment:Technical/Non-technical/Hybrid"`
	LinkedinUrl      string `gorm:"column:linkedin_url;type:varchar(512)"`
	GithubUrl        string `gorm:"column:github_url;type:varchar(512)"`
	PortfolioUrl     string `gorm:"column:portfolio_url;type:varchar(512)"`

	// IsComplete 资料完整后才会出现在目录中，由 BeforeSave 计算
	IsComplete bool `gorm:"column:is_complete;index;not null;default:false;comment:资料是否完整"`

	// Status 账号状态 0=正常, 1=禁用
	Status int8 `gorm:"column:status;index;not null;default:0;comment:状态，0.正常，1.禁用"`

	// RawPassword 明文密码（不入库），在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

func (Profile) TableName() string {
	return "profile"
}

// BeforeSave 加密明文密码并重新计算资料完整度
func (p *Profile) BeforeSave(tx *gorm.DB) (err error) {
	if p.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.Password = string(hash)
		p.RawPassword = ""
	}
	p.IsComplete = p.Completed()
	return nil
}

// Completed 姓名、简介、愿景、技能、合伙人类型都填写才算完整
func (p *Profile) Completed() bool {
	for _, f := range []string{p.FullName, p.Bio, p.StartupVision, p.Skills, p.CofounderType} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// CheckPassword 校验密码是否正确
func (p *Profile) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(plaintext)) == nil
}
