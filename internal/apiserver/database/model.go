package database

import "time"

// User is an individual account owned by an enterprise. GroupID is nil
// for users without a capability group; they get the minimal set.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	EnterpriseID uint      `json:"enterpriseId" gorm:"not null;index"`
	GroupID      *uint     `json:"groupId" gorm:"index"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Enterprise is a company account identified by its CNPJ.
type Enterprise struct {
	ID                 uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CNPJ               string    `json:"cnpj" gorm:"type:varchar(14);uniqueIndex;not null"`
	Password           string    `json:"-" gorm:"not null"`
	TradeName          string    `json:"tradeName" gorm:"type:varchar(255);not null"`
	LegalName          string    `json:"legalName" gorm:"type:varchar(255)"`
	Address            string    `json:"address" gorm:"type:varchar(255)"`
	City               string    `json:"city" gorm:"type:varchar(100)"`
	State              string    `json:"state" gorm:"type:varchar(2)"`
	RegistrationStatus string    `json:"registrationStatus" gorm:"type:varchar(50)"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Group is an enterprise-owned named bundle of capability flags assigned
// to users. Capability names are stored as strings; unknown names are
// tolerated at read time and skipped by the permission resolver.
type Group struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	EnterpriseID uint      `json:"enterpriseId" gorm:"not null;index"`
	Permissions  []string  `json:"permissions" gorm:"serializer:json;type:text"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Release is a fiscal-note entry ("lançamento") inside an accounting period.
type Release struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Description  string    `json:"description" gorm:"type:varchar(255);not null"`
	Value        float64   `json:"value" gorm:"not null"`
	NoteNumber   string    `json:"noteNumber" gorm:"type:varchar(50)"`
	ImageURL     string    `json:"imageUrl" gorm:"type:text"`
	PeriodID     uint      `json:"periodId" gorm:"not null;index"`
	EnterpriseID uint      `json:"enterpriseId" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Period is an accounting period grouping releases.
type Period struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Month        int       `json:"month" gorm:"not null"`
	Year         int       `json:"year" gorm:"not null"`
	Closed       bool      `json:"closed" gorm:"not null;default:false"`
	EnterpriseID uint      `json:"enterpriseId" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
