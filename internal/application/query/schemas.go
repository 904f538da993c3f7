package query

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// Esquemas de las pantallas de lista.

var ProductSchema = Schema[entity.Product]{
	SearchFields: []func(entity.Product) string{
		func(p entity.Product) string { return p.Name },
		func(p entity.Product) string { return p.Code },
		func(p entity.Product) string { return p.Category },
	},
	FilterFields: map[string]func(entity.Product) string{
		"category":   func(p entity.Product) string { return p.Category },
		"categoryId": func(p entity.Product) string { return p.CategoryID },
		"stockLevel": stockLevel,
	},
	SortKeys: map[string]SortKey[entity.Product]{
		"name":  ByString(func(p entity.Product) string { return p.Name }),
		"code":  ByString(func(p entity.Product) string { return p.Code }),
		"price": ByNumber(func(p entity.Product) decimal.Decimal { return p.Price }),
		"stock": ByInt(func(p entity.Product) int { return p.Stock }),
		"sold":  ByInt(func(p entity.Product) int { return p.Sold }),
	},
	DefaultSort: "name",
}

// stockLevel clasifica el inventario: out (0), low (< LowStockThreshold) o ok.
func stockLevel(p entity.Product) string {
	switch {
	case p.Stock == 0:
		return "out"
	case p.Stock < entity.LowStockThreshold:
		return "low"
	default:
		return "ok"
	}
}

var UserSchema = Schema[entity.User]{
	SearchFields: []func(entity.User) string{
		func(u entity.User) string { return u.Name },
		func(u entity.User) string { return u.Email },
	},
	FilterFields: map[string]func(entity.User) string{
		"status": func(u entity.User) string { return string(u.Status) },
	},
	SortKeys: map[string]SortKey[entity.User]{
		"name":       ByString(func(u entity.User) string { return u.Name }),
		"createdAt":  ByDate(func(u entity.User) time.Time { return u.CreatedAt }),
		"totalSpent": ByNumber(totalSpent),
		"lastLogin":  ByDate(lastLogin),
	},
	DefaultSort: "createdAt",
}

// AdminSchema comparte los campos de UserSchema; los admins no tienen totalSpent.
var AdminSchema = Schema[entity.User]{
	SearchFields: UserSchema.SearchFields,
	FilterFields: UserSchema.FilterFields,
	SortKeys: map[string]SortKey[entity.User]{
		"name":      UserSchema.SortKeys["name"],
		"createdAt": UserSchema.SortKeys["createdAt"],
		"lastLogin": UserSchema.SortKeys["lastLogin"],
	},
	DefaultSort: "createdAt",
}

func totalSpent(u entity.User) decimal.Decimal {
	if u.TotalSpent == nil {
		return decimal.Zero
	}
	return *u.TotalSpent
}

func lastLogin(u entity.User) time.Time {
	if u.LastLogin == nil {
		return time.Time{}
	}
	return *u.LastLogin
}

var CategorySchema = Schema[entity.Category]{
	SearchFields: []func(entity.Category) string{
		func(c entity.Category) string { return c.Name },
		func(c entity.Category) string { return c.Slug },
	},
	FilterFields: map[string]func(entity.Category) string{
		"status":   func(c entity.Category) string { return string(c.Status) },
		"parentId": func(c entity.Category) string { return c.ParentID },
	},
	SortKeys: map[string]SortKey[entity.Category]{
		"name":         ByString(func(c entity.Category) string { return c.Name }),
		"productCount": ByInt(func(c entity.Category) int { return c.ProductCount }),
		"createdAt":    ByDate(func(c entity.Category) time.Time { return c.CreatedAt }),
	},
	DefaultSort: "createdAt",
}

var OrderSchema = Schema[entity.Order]{
	SearchFields: []func(entity.Order) string{
		func(o entity.Order) string { return o.ID },
		func(o entity.Order) string { return o.UserName },
	},
	FilterFields: map[string]func(entity.Order) string{
		"status": func(o entity.Order) string { return string(o.Status) },
		"userId": func(o entity.Order) string { return o.UserID },
	},
	SortKeys: map[string]SortKey[entity.Order]{
		"createdAt": ByDate(func(o entity.Order) time.Time { return o.CreatedAt }),
		"total":     ByNumber(func(o entity.Order) decimal.Decimal { return o.Total }),
	},
	DefaultSort: "createdAt",
}

var ReviewSchema = Schema[entity.Review]{
	SearchFields: []func(entity.Review) string{
		func(r entity.Review) string { return r.UserName },
		func(r entity.Review) string { return r.Comment },
	},
	FilterFields: map[string]func(entity.Review) string{
		"status":    func(r entity.Review) string { return string(r.Status) },
		"productId": func(r entity.Review) string { return r.ProductID },
		"rating":    func(r entity.Review) string { return strconv.Itoa(r.Rating) },
	},
	SortKeys: map[string]SortKey[entity.Review]{
		"createdAt": ByDate(func(r entity.Review) time.Time { return r.CreatedAt }),
		"rating":    ByInt(func(r entity.Review) int { return r.Rating }),
	},
	DefaultSort: "createdAt",
}

var ShippingSchema = Schema[entity.ShippingUnit]{
	SearchFields: []func(entity.ShippingUnit) string{
		func(s entity.ShippingUnit) string { return s.Name },
		func(s entity.ShippingUnit) string { return s.Code },
	},
	FilterFields: map[string]func(entity.ShippingUnit) string{
		"active": func(s entity.ShippingUnit) string { return strconv.FormatBool(s.Active) },
	},
	SortKeys: map[string]SortKey[entity.ShippingUnit]{
		"name":  ByString(func(s entity.ShippingUnit) string { return s.Name }),
		"code":  ByString(func(s entity.ShippingUnit) string { return s.Code }),
		"price": ByNumber(func(s entity.ShippingUnit) decimal.Decimal { return s.Price }),
	},
	DefaultSort: "name",
}

var PromotionSchema = Schema[entity.Promotion]{
	SearchFields: []func(entity.Promotion) string{
		func(p entity.Promotion) string { return p.Name },
		func(p entity.Promotion) string { return p.Code },
	},
	FilterFields: map[string]func(entity.Promotion) string{
		"active": func(p entity.Promotion) string { return strconv.FormatBool(p.Active) },
		"type":   func(p entity.Promotion) string { return string(p.Type) },
		"scope":  func(p entity.Promotion) string { return string(p.Scope) },
	},
	SortKeys: map[string]SortKey[entity.Promotion]{
		"name":      ByString(func(p entity.Promotion) string { return p.Name }),
		"startDate": ByDate(func(p entity.Promotion) time.Time { return p.StartDate }),
		"endDate":   ByDate(func(p entity.Promotion) time.Time { return p.EndDate }),
		"value":     ByNumber(func(p entity.Promotion) decimal.Decimal { return p.Value }),
		"usedCount": ByInt(func(p entity.Promotion) int { return p.UsedCount }),
	},
	DefaultSort: "startDate",
}
