package model

import (
	"fmt"
	"strings"
	"time"
)

type OfferStatus string

const (
	OfferStatusActive    OfferStatus = "Active"
	OfferStatusCompleted OfferStatus = "Completed"
	OfferStatusCancelled OfferStatus = "Cancelled"
	OfferStatusExpired   OfferStatus = "Expired"
)

type ProductType string

const (
	ProductTypeGrains     ProductType = "Grains"
	ProductTypeFruits     ProductType = "Fruits"
	ProductTypeVegetables ProductType = "Vegetables"
	ProductTypeNuts       ProductType = "Nuts"
	ProductTypeHerbs      ProductType = "Herbs"
	ProductTypeLegumes    ProductType = "Legumes"
	ProductTypeOther      ProductType = "Other"
)

var productTypes = []ProductType{
	ProductTypeGrains, ProductTypeFruits, ProductTypeVegetables, ProductTypeNuts,
	ProductTypeHerbs, ProductTypeLegumes, ProductTypeOther,
}

func ParseProductType(s string) (ProductType, error) {
	s = strings.TrimSpace(s)
	for _, p := range productTypes {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown product type %q", s)
}

type QualityGrade string

const (
	QualityGradePremium   QualityGrade = "Premium"
	QualityGradeGrade1    QualityGrade = "Grade1"
	QualityGradeGrade2    QualityGrade = "Grade2"
	QualityGradeStandard  QualityGrade = "Standard"
	QualityGradeOrganic   QualityGrade = "Organic"
	QualityGradeCertified QualityGrade = "Certified"
)

var qualityGrades = []QualityGrade{
	QualityGradePremium, QualityGradeGrade1, QualityGradeGrade2,
	QualityGradeStandard, QualityGradeOrganic, QualityGradeCertified,
}

func ParseQualityGrade(s string) (QualityGrade, error) {
	s = strings.TrimSpace(s)
	for _, g := range qualityGrades {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown quality grade %q", s)
}

// Offer is a farmer's advertised harvest. After creation only settlement
// touches AvailableQuantity and Status.
type Offer struct {
	ID                string       `gorm:"column:id;primaryKey;size:64"`
	FarmerUID         string       `gorm:"column:farmer_uid;size:128;index;not null"`
	ProductName       string       `gorm:"column:product_name;size:200;not null"`
	ProductType       ProductType  `gorm:"column:product_type;size:32;not null"`
	ProductTypeOther  string       `gorm:"column:product_type_other;size:120"`
	Description       string       `gorm:"column:description;type:text"`
	HarvestDate       string       `gorm:"column:harvest_date;size:32"`
	Location          string       `gorm:"column:location;size:200"`
	QualityGrade      QualityGrade `gorm:"column:quality_grade;size:32;not null"`
	QualityCertifier  string       `gorm:"column:quality_certifier;size:120"`
	TotalQuantity     uint64       `gorm:"column:total_quantity;not null"`
	AvailableQuantity uint64       `gorm:"column:available_quantity;not null"`
	PricePerKg        float64      `gorm:"column:price_per_kg;not null"`
	MinimumInvestment uint64       `gorm:"column:minimum_investment;not null"`
	ImageURL          *string      `gorm:"column:image_url;size:512"`
	Status            OfferStatus  `gorm:"column:status;size:16;index;not null"`
	CreatedAt         time.Time    `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time    `gorm:"column:updated_at;not null"`
}

func (Offer) TableName() string {
	return "offers"
}
