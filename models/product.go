package models

import "encoding/json"

// Media slot limits imposed by the backend listing schema. Ten image slots
// is a marketplace listing convention (Amazon-style galleries); the backend
// stores them as fixed columns image_1..image_10.
const (
	MaxImages = 10
	MaxVideos = 2
)

// Product is one catalog record as the admin edits it. Media URLs are kept
// as bounded ordered slices; the numbered image_N/video_N wire fields are
// produced by the JSON codec below.
type Product struct {
	ID          string `json:"id,omitempty"`
	ProductCode string `json:"product_code"`
	AmazonASIN  string `json:"amazon_asin"`
	SKUID       string `json:"sku_id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	MRP          float64 `json:"mrp" validate:"gte=0"`
	CostPrice    float64 `json:"cost_price" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"gte=0"`

	PackagingLength  float64 `json:"packaging_length" validate:"gte=0"`
	PackagingBreadth float64 `json:"packaging_breadth" validate:"gte=0"`
	PackagingHeight  float64 `json:"packaging_height" validate:"gte=0"`
	PackagingWeight  float64 `json:"packaging_weight" validate:"gte=0"`
	GSTPercentage    float64 `json:"gst_percentage" validate:"gte=0"`

	Images    []string `json:"-" validate:"max=10"`
	Videos    []string `json:"-" validate:"max=2"`
	SizeChart string   `json:"size_chart"`

	ProductType             string `json:"product_type"`
	Size                    string `json:"size"`
	Colour                  string `json:"colour"`
	ReturnExchangeCondition string `json:"return_exchange_condition"`
	HSNCode                 string `json:"hsn_code"`
	CustomAttributes        string `json:"custom_attributes"`

	IsActive   bool `json:"is_active"`
	IsFeatured bool `json:"is_featured"`

	StoreID       string `json:"store_id"`
	CategoryID    int64  `json:"category_id"`
	SubCategoryID int64  `json:"sub_category_id"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// wireProduct mirrors the backend schema exactly, with one field per media
// slot. It exists only for JSON conversion.
type wireProduct struct {
	ID          string `json:"id,omitempty"`
	ProductCode string `json:"product_code"`
	AmazonASIN  string `json:"amazon_asin"`
	SKUID       string `json:"sku_id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	SellingPrice float64 `json:"selling_price"`
	MRP          float64 `json:"mrp"`
	CostPrice    float64 `json:"cost_price"`
	Quantity     int     `json:"quantity"`

	PackagingLength  float64 `json:"packaging_length"`
	PackagingBreadth float64 `json:"packaging_breadth"`
	PackagingHeight  float64 `json:"packaging_height"`
	PackagingWeight  float64 `json:"packaging_weight"`
	GSTPercentage    float64 `json:"gst_percentage"`

	Image1  string `json:"image_1"`
	Image2  string `json:"image_2"`
	Image3  string `json:"image_3"`
	Image4  string `json:"image_4"`
	Image5  string `json:"image_5"`
	Image6  string `json:"image_6"`
	Image7  string `json:"image_7"`
	Image8  string `json:"image_8"`
	Image9  string `json:"image_9"`
	Image10 string `json:"image_10"`

	Video1    string `json:"video_1"`
	Video2    string `json:"video_2"`
	SizeChart string `json:"size_chart"`

	ProductType             string `json:"product_type"`
	Size                    string `json:"size"`
	Colour                  string `json:"colour"`
	ReturnExchangeCondition string `json:"return_exchange_condition"`
	HSNCode                 string `json:"hsn_code"`
	CustomAttributes        string `json:"custom_attributes"`

	IsActive   bool `json:"is_active"`
	IsFeatured bool `json:"is_featured"`

	StoreID       string `json:"store_id"`
	CategoryID    int64  `json:"category_id"`
	SubCategoryID int64  `json:"sub_category_id"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (p Product) wire() wireProduct {
	w := wireProduct{
		ID:                      p.ID,
		ProductCode:             p.ProductCode,
		AmazonASIN:              p.AmazonASIN,
		SKUID:                   p.SKUID,
		Name:                    p.Name,
		Description:             p.Description,
		SellingPrice:            p.SellingPrice,
		MRP:                     p.MRP,
		CostPrice:               p.CostPrice,
		Quantity:                p.Quantity,
		PackagingLength:         p.PackagingLength,
		PackagingBreadth:        p.PackagingBreadth,
		PackagingHeight:         p.PackagingHeight,
		PackagingWeight:         p.PackagingWeight,
		GSTPercentage:           p.GSTPercentage,
		SizeChart:               p.SizeChart,
		ProductType:             p.ProductType,
		Size:                    p.Size,
		Colour:                  p.Colour,
		ReturnExchangeCondition: p.ReturnExchangeCondition,
		HSNCode:                 p.HSNCode,
		CustomAttributes:        p.CustomAttributes,
		IsActive:                p.IsActive,
		IsFeatured:              p.IsFeatured,
		StoreID:                 p.StoreID,
		CategoryID:              p.CategoryID,
		SubCategoryID:           p.SubCategoryID,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}

	images := [MaxImages]*string{
		&w.Image1, &w.Image2, &w.Image3, &w.Image4, &w.Image5,
		&w.Image6, &w.Image7, &w.Image8, &w.Image9, &w.Image10,
	}
	for i, url := range p.Images {
		if i >= MaxImages {
			break
		}
		*images[i] = url
	}

	videos := [MaxVideos]*string{&w.Video1, &w.Video2}
	for i, url := range p.Videos {
		if i >= MaxVideos {
			break
		}
		*videos[i] = url
	}

	return w
}

func (w wireProduct) product() Product {
	p := Product{
		ID:                      w.ID,
		ProductCode:             w.ProductCode,
		AmazonASIN:              w.AmazonASIN,
		SKUID:                   w.SKUID,
		Name:                    w.Name,
		Description:             w.Description,
		SellingPrice:            w.SellingPrice,
		MRP:                     w.MRP,
		CostPrice:               w.CostPrice,
		Quantity:                w.Quantity,
		PackagingLength:         w.PackagingLength,
		PackagingBreadth:        w.PackagingBreadth,
		PackagingHeight:         w.PackagingHeight,
		PackagingWeight:         w.PackagingWeight,
		GSTPercentage:           w.GSTPercentage,
		SizeChart:               w.SizeChart,
		ProductType:             w.ProductType,
		Size:                    w.Size,
		Colour:                  w.Colour,
		ReturnExchangeCondition: w.ReturnExchangeCondition,
		HSNCode:                 w.HSNCode,
		CustomAttributes:        w.CustomAttributes,
		IsActive:                w.IsActive,
		IsFeatured:              w.IsFeatured,
		StoreID:                 w.StoreID,
		CategoryID:              w.CategoryID,
		SubCategoryID:           w.SubCategoryID,
		CreatedAt:               w.CreatedAt,
		UpdatedAt:               w.UpdatedAt,
	}

	// Empty slots are dropped; order of the populated slots is preserved.
	for _, url := range []string{
		w.Image1, w.Image2, w.Image3, w.Image4, w.Image5,
		w.Image6, w.Image7, w.Image8, w.Image9, w.Image10,
	} {
		if url != "" {
			p.Images = append(p.Images, url)
		}
	}
	for _, url := range []string{w.Video1, w.Video2} {
		if url != "" {
			p.Videos = append(p.Videos, url)
		}
	}

	return p
}

// MarshalJSON emits the backend's numbered-slot schema.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// UnmarshalJSON folds the numbered media slots back into bounded slices.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w wireProduct
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = w.product()
	return nil
}
