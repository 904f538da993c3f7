// Package spreadsheet exporta e importa el catálogo de productos en formato XLSX.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// SheetName hoja donde se escribe el catálogo.
const SheetName = "Products"

// Columns cabecera del export, en orden. El import acepta cualquier orden.
var Columns = []string{
	"id", "code", "name", "price", "category", "categoryId",
	"stock", "image", "description", "sold",
}

// ExportProducts escribe los productos en un libro XLSX y devuelve sus bytes.
func ExportProducts(products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: renombrar hoja: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("spreadsheet: cabecera: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			p.ID, p.Code, p.Name, p.Price.String(), p.Category, p.CategoryID,
			p.Stock, p.Image, p.Description, p.Sold,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("spreadsheet: fila %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("spreadsheet: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportProducts lee la primera hoja del libro. La primera fila es la cabecera;
// las columnas se reconocen por nombre sin distinguir mayúsculas. Las columnas
// code y name son obligatorias. Un valor numérico inválido devuelve
// ErrValidationFailed con el número de fila.
func ImportProducts(data []byte) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: archivo xlsx ilegible: %v", domain.ErrValidationFailed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrValidationFailed)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer filas: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: hoja vacía", domain.ErrValidationFailed)
	}

	cols := mapColumns(rows[0])
	for _, required := range []string{"code", "name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrValidationFailed, required)
		}
	}

	products := make([]entity.Product, 0, len(rows)-1)
	for i, r := range rows[1:] {
		if blank(r) {
			continue
		}
		p, err := parseRow(r, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrValidationFailed, i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func mapColumns(header []string) map[string]int {
	known := make(map[string]string, len(Columns))
	for _, c := range Columns {
		known[strings.ToLower(c)] = c
	}
	out := make(map[string]int, len(header))
	for i, h := range header {
		if name, ok := known[strings.ToLower(strings.TrimSpace(h))]; ok {
			out[name] = i
		}
	}
	return out
}

func parseRow(r []string, cols map[string]int) (entity.Product, error) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(r) {
			return ""
		}
		return strings.TrimSpace(r[idx])
	}

	p := entity.Product{
		ID:          get("id"),
		Code:        get("code"),
		Name:        get("name"),
		Category:    get("category"),
		CategoryID:  get("categoryId"),
		Image:       get("image"),
		Description: get("description"),
	}

	if s := get("price"); s != "" {
		price, err := decimal.NewFromString(s)
		if err != nil {
			return p, fmt.Errorf("price %q no es numérico", s)
		}
		p.Price = price
	}
	var err error
	if p.Stock, err = atoi(get("stock")); err != nil {
		return p, fmt.Errorf("stock: %v", err)
	}
	if p.Sold, err = atoi(get("sold")); err != nil {
		return p, fmt.Errorf("sold: %v", err)
	}
	return p, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q no es un entero", s)
	}
	return n, nil
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
