package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// TemplateFilename is the name the admin screen downloads the template as.
const TemplateFilename = "product_upload_template.csv"

// templateColumns is the bulk-upload schema, in the exact order the
// backend expects.
var templateColumns = []string{
	"product_code",
	"amazon_asin",
	"sku_id",
	"name",
	"description",
	"selling_price",
	"mrp",
	"cost_price",
	"quantity",
	"packaging_length",
	"packaging_breadth",
	"packaging_height",
	"packaging_weight",
	"gst_percentage",
	"image_1",
	"image_2",
	"image_3",
	"image_4",
	"image_5",
	"image_6",
	"image_7",
	"image_8",
	"image_9",
	"image_10",
	"video_1",
	"video_2",
	"size_chart",
	"product_type",
	"size",
	"colour",
	"return_exchange_condition",
	"hsn_code",
	"custom_attributes",
	"is_active",
	"is_featured",
	"store_id",
	"category_id",
	"sub_category_id",
}

var templateSampleRow = []string{
	"PROD001",
	"B08N5WRWNW",
	"SKU001",
	"Sample Product",
	"This is a sample product description",
	"999.99",
	"1199.99",
	"800.00",
	"50",
	"15.0",
	"7.5",
	"0.8",
	"189",
	"18",
	"https://example.com/image1.jpg",
	"https://example.com/image2.jpg",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"",
	"https://example.com/video1.mp4",
	"",
	"https://example.com/sizechart.jpg",
	"Electronics",
	"Standard",
	"Black",
	"7 days return policy",
	"8517",
	`{"feature1": "value1", "feature2": "value2"}`,
	"true",
	"false",
	"1",
	"1",
	"1",
}

// WriteTemplate writes the downloadable CSV template: the header row plus
// one sample data row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(templateColumns); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := cw.Write(templateSampleRow); err != nil {
		return fmt.Errorf("write template sample row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// SaveTemplate writes the template to the given path.
func SaveTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create template file: %w", err)
	}
	defer f.Close()

	if err := WriteTemplate(f); err != nil {
		return err
	}
	return f.Close()
}
