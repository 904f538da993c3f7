package admin

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func vnd(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func vndPtr(n int64) *decimal.Decimal {
	d := vnd(n)
	return &d
}

func intPtr(n int) *int { return &n }

func caps(view, create, edit, del bool) entity.Capability {
	return entity.Capability{View: view, Create: create, Edit: edit, Delete: del}
}

// DemoSeed datos de demostración del panel. now fija las fechas relativas de la promoción.
func DemoSeed(now time.Time) Seed {
	return Seed{
		Admins: []entity.User{
			{
				ID: "admin-1", Name: "Admin Chính", Email: "admin@example.com",
				Role: entity.RoleAdmin, Status: entity.StatusActive,
				CreatedAt: day("2024-01-01"), LastLogin: dayPtr("2024-10-15"),
				// sin reviews ni shipping: el super-admin los obtiene por defecto
				Permissions: entity.Permissions{
					entity.ResourceUsers:      caps(true, true, true, true),
					entity.ResourceProducts:   caps(true, true, true, true),
					entity.ResourceCategories: caps(true, true, true, true),
					entity.ResourceOrders:     caps(true, false, true, true),
					entity.ResourceSettings:   caps(true, false, true, false),
				},
			},
			{
				ID: "admin-2", Name: "NV Quản lý Sản phẩm", Email: "qlsp@example.com",
				Role: entity.RoleAdmin, Status: entity.StatusActive,
				CreatedAt: day("2024-02-01"), LastLogin: dayPtr("2024-10-14"),
				Permissions: entity.Permissions{
					entity.ResourceUsers:      caps(false, false, false, false),
					entity.ResourceProducts:   caps(true, true, true, true),
					entity.ResourceCategories: caps(true, true, true, false),
					entity.ResourceOrders:     caps(true, false, false, false),
					entity.ResourceSettings:   caps(false, false, false, false),
				},
			},
			{
				ID: "admin-3", Name: "NV Quản lý Đơn hàng", Email: "qldh@example.com",
				Role: entity.RoleAdmin, Status: entity.StatusActive,
				CreatedAt: day("2024-02-10"), LastLogin: dayPtr("2024-10-13"),
				Permissions: entity.Permissions{
					entity.ResourceUsers:      caps(false, false, false, false),
					entity.ResourceProducts:   caps(true, false, false, false),
					entity.ResourceCategories: caps(true, false, false, false),
					entity.ResourceOrders:     caps(true, false, true, false),
					entity.ResourceSettings:   caps(false, false, false, false),
				},
			},
			{
				ID: "admin-4", Name: "NV Hỗ trợ", Email: "hotro@example.com",
				Role: entity.RoleAdmin, Status: entity.StatusInactive,
				CreatedAt: day("2024-03-01"), LastLogin: dayPtr("2024-09-20"),
				Permissions: entity.Permissions{
					entity.ResourceUsers:      caps(true, false, false, false),
					entity.ResourceProducts:   caps(true, false, false, false),
					entity.ResourceCategories: caps(true, false, false, false),
					entity.ResourceOrders:     caps(true, false, true, false),
					entity.ResourceSettings:   caps(false, false, false, false),
				},
			},
		},
		Users: []entity.User{
			{ID: "1", Name: "Nguyễn Thành Tâm", Email: "nguyenthanhtam10062004@gmail.com", Role: entity.RoleUser, Status: entity.StatusActive, CreatedAt: day("2024-01-15"), LastLogin: dayPtr("2024-10-13"), TotalSpent: vndPtr(5000000)},
			{ID: "2", Name: "Tâm DepZai", Email: "tamdepzai@gmail.com", Role: entity.RoleUser, Status: entity.StatusActive, CreatedAt: day("2024-02-20"), LastLogin: dayPtr("2024-10-12"), TotalSpent: vndPtr(3200000)},
			{ID: "3", Name: "Lê Văn Luyện", Email: "levanluyen@email.com", Role: entity.RoleUser, Status: entity.StatusInactive, CreatedAt: day("2024-03-10"), LastLogin: dayPtr("2024-09-20"), TotalSpent: vndPtr(1500000)},
			{ID: "4", Name: "Luffy", Email: "luffy@email.com", Role: entity.RoleUser, Status: entity.StatusActive, CreatedAt: day("2024-04-05"), LastLogin: dayPtr("2024-10-13"), TotalSpent: vndPtr(8900000)},
			{ID: "5", Name: "Cristiano Ronaldo", Email: "cr7@email.com", Role: entity.RoleUser, Status: entity.StatusActive, CreatedAt: day("2024-05-01"), LastLogin: dayPtr("2024-10-11"), TotalSpent: vndPtr(2100000)},
		},
		Categories: []entity.Category{
			{ID: "1", Name: "Điện thoại", Slug: "dien-thoai", Description: "Điện thoại thông minh các loại", Status: entity.StatusActive, CreatedAt: day("2024-01-10")},
			{ID: "2", Name: "Laptop", Slug: "laptop", Description: "Máy tính xách tay văn phòng và gaming", Status: entity.StatusActive, CreatedAt: day("2024-01-12")},
			{ID: "3", Name: "Tablet", Slug: "tablet", Description: "Máy tính bảng iPad và Android", Status: entity.StatusActive, CreatedAt: day("2024-01-15")},
			{ID: "4", Name: "Phụ kiện", Slug: "phu-kien", Description: "Phụ kiện công nghệ đa dạng", Status: entity.StatusActive, CreatedAt: day("2024-02-01")},
		},
		Products: []entity.Product{
			{ID: "1", Code: "IP15PM256", Name: "iPhone 15 Pro", Price: vnd(30000000), Category: "Điện thoại", CategoryID: "1", Stock: 15, Image: "https://static1.pocketnowimages.com/wordpress/wp-content/uploads/2023/09/pbi-iphone-15-pro-max.png", Description: "iPhone 15 Pro Max 256GB", Sold: 120},
			{ID: "2", Code: "SSS23U512", Name: "Samsung Galaxy S24", Price: vnd(22000000), Category: "Điện thoại", CategoryID: "1", Stock: 8, Image: "https://static1.anpoimages.com/wordpress/wp-content/uploads/2024/01/galaxy-s24-ultra-titanium-violet.png", Description: "Samsung Galaxy S24 Ultra", Sold: 85},
			{ID: "3", Code: "LTDXPS13", Name: "Laptop Dell XPS 13", Price: vnd(25000000), Category: "Laptop", CategoryID: "2", Stock: 20, Image: "https://th.bing.com/th/id/R.bbe58c8447552bc0e3b77fb7981e71fc?rik=IvCoYOSQPKcwUQ&pid=ImgRaw&r=0", Description: "Dell XPS 13 i7 16GB RAM", Sold: 45},
			{ID: "4", Code: "IPADP11M2", Name: `iPad Pro 11"`, Price: vnd(20000000), Category: "Tablet", CategoryID: "3", Stock: 5, Image: "https://pisces.bbystatic.com/image2/BestBuy_US/images/products/6340/6340504cv11d.jpg", Description: "iPad Pro 11 inch M2", Sold: 60},
			{ID: "5", Code: "MBP14M3", Name: `MacBook Pro 14"`, Price: vnd(45000000), Category: "Laptop", CategoryID: "2", Stock: 10, Image: "https://macfinder.co.uk/wp-content/uploads/2022/12/img-MacBook-Pro-Retina-14-Inch-23934.jpg", Description: "MacBook Pro 14 M3 Pro", Sold: 30},
		},
		Orders: []entity.Order{
			{ID: "1001", UserID: "2", UserName: "Tâm DepZai", Products: []entity.OrderLine{{ID: "1", Name: "iPhone 15 Pro", Quantity: 1, Price: vnd(30000000)}}, Total: vnd(30000000), Status: entity.OrderDelivered, CreatedAt: day("2024-10-10")},
			{ID: "1002", UserID: "4", UserName: "Luffy", Products: []entity.OrderLine{{ID: "2", Name: "Samsung Galaxy S24", Quantity: 1, Price: vnd(22000000)}, {ID: "4", Name: `iPad Pro 11"`, Quantity: 1, Price: vnd(20000000)}}, Total: vnd(42000000), Status: entity.OrderShipped, CreatedAt: day("2024-10-12")},
			{ID: "1003", UserID: "2", UserName: "Tâm DepZai", Products: []entity.OrderLine{{ID: "3", Name: "Laptop Dell XPS 13", Quantity: 1, Price: vnd(25000000)}}, Total: vnd(25000000), Status: entity.OrderProcessing, CreatedAt: day("2024-10-13")},
			{ID: "1004", UserID: "1", UserName: "Nguyễn Thành Tâm", Products: []entity.OrderLine{{ID: "1", Name: "iPhone 15 Pro", Quantity: 2, Price: vnd(30000000)}}, Total: vnd(60000000), Status: entity.OrderPending, CreatedAt: day("2024-10-14")},
		},
		Reviews: []entity.Review{
			{ID: "r1", ProductID: "1", UserID: "4", UserName: "Luffy", Rating: 5, Comment: "Sản phẩm tuyệt vời, giao nhanh!", CreatedAt: day("2024-10-11"), Status: entity.ReviewPublished},
			{ID: "r2", ProductID: "2", UserID: "2", UserName: "Tâm DepZai", Rating: 4, Comment: "Màu sắc đẹp, pin tốt", CreatedAt: day("2024-10-12"), Status: entity.ReviewPublished},
			{ID: "r3", ProductID: "3", UserID: "3", UserName: "Lê Văn Luyện", Rating: 3, Comment: "Tạm ổn, hơi nóng khi chơi game", CreatedAt: day("2024-10-09"), Status: entity.ReviewPending},
		},
		ShippingUnits: []entity.ShippingUnit{
			{ID: "s1", Name: "Giao hàng tiêu chuẩn", Code: "STD", Price: vnd(30000), EstimatedDays: "3-5", Active: true},
			{ID: "s2", Name: "Giao hàng nhanh", Code: "EXP", Price: vnd(60000), EstimatedDays: "1-2", Active: true},
			{ID: "s3", Name: "Giao hàng thu hồi", Code: "RET", Price: vnd(0), EstimatedDays: "n/a", Active: false},
		},
		Promotions: []entity.Promotion{
			{
				ID: "promo-oct10", Name: "T10 SALE 10%", Code: "OCT10",
				Type: entity.PromoPercent, Value: vnd(10),
				StartDate: now.AddDate(0, 0, -7), EndDate: now.AddDate(0, 0, 14),
				Active: true, Scope: entity.ScopeGlobal, ScopeIDs: []string{},
				MinOrderValue: vndPtr(300000), UsageLimit: intPtr(500), UsedCount: 42,
				CreatedAt: now, UpdatedAt: now,
			},
		},
	}
}
