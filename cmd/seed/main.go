package main

import (
	"fmt"
	"log"
	"time"

	"github.com/salesdesk-next/internal/authz"
	"github.com/salesdesk-next/internal/config"
	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化授权与预置角色
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap builtin roles: %v", err)
	}

	// 添加演示员工（每个角色一名）
	if err := models.InitDefaultAdmin("admin", "admin123"); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	staff := []struct {
		Username    string
		DisplayName string
		Role        string
	}{
		{Username: "sale01", DisplayName: "Somchai", Role: constants.RoleSale},
		{Username: "finance01", DisplayName: "Kanya", Role: constants.RoleFinance},
		{Username: "warehouse01", DisplayName: "Prasert", Role: constants.RoleWarehouse},
		{Username: "backoffice01", DisplayName: "Nok", Role: constants.RoleBackoffice},
	}
	for _, member := range staff {
		var existing models.Admin
		if err := models.DB.Where("username = ?", member.Username).First(&existing).Error; err == nil {
			stdLog.Printf("Admin already exists: %s", member.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", member.Username, err)
			continue
		}
		admin := models.Admin{
			Username:     member.Username,
			DisplayName:  member.DisplayName,
			PasswordHash: string(hash),
			Role:         member.Role,
		}
		if err := models.DB.Create(&admin).Error; err != nil {
			stdLog.Printf("Failed to create admin %s: %v", member.Username, err)
			continue
		}
		if err := authzService.SetAdminRoles(admin.ID, []string{member.Role}); err != nil {
			stdLog.Printf("Failed to assign role for %s: %v", member.Username, err)
		}
		stdLog.Printf("Created admin: %s (%s)", member.Username, member.Role)
	}

	// 添加客户
	customers := []models.Customer{
		{Name: "Siriporn T.", Phone: "0812345678", Address: "99/1 Moo 4, Mueang", Province: "Chiang Mai", Note: "Repeat buyer"},
		{Name: "Anan P.", Phone: "0898765432", Address: "12 Sukhumvit 21", Province: "Bangkok"},
		{Name: "Malee K.", Phone: "0861112222", Address: "45 Thepharak Rd", Province: "Samut Prakan", Note: "Prefers COD"},
	}
	for _, customer := range customers {
		var existing models.Customer
		if err := models.DB.Where("name = ? AND phone = ?", customer.Name, customer.Phone).First(&existing).Error; err == nil {
			stdLog.Printf("Customer already exists: %s", customer.Name)
			continue
		}
		if err := models.DB.Create(&customer).Error; err != nil {
			stdLog.Printf("Failed to create customer %s: %v", customer.Name, err)
		} else {
			stdLog.Printf("Created customer: %s", customer.Name)
		}
	}

	// 添加商品
	products := []models.Product{
		{SKU: "CRM-001", Name: "Herbal Cream 50g", Price: models.NewMoneyFromFloat(290), IsActive: true},
		{SKU: "CRM-002", Name: "Herbal Cream 100g", Price: models.NewMoneyFromFloat(490), IsActive: true},
		{SKU: "SRM-001", Name: "Vitamin C Serum", Price: models.NewMoneyFromFloat(590), IsActive: true},
		{SKU: "SOP-001", Name: "Charcoal Soap", Price: models.NewMoneyFromFloat(89), IsActive: true},
		{SKU: "SOP-002", Name: "Rice Milk Soap", Price: models.NewMoneyFromFloat(89), IsActive: false},
	}
	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", product.SKU).First(&existing).Error; err == nil {
			productIDs[product.SKU] = existing.ID
			stdLog.Printf("Product already exists: %s", product.SKU)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.SKU, err)
			continue
		}
		productIDs[product.SKU] = product.ID
		stdLog.Printf("Created product: %s", product.SKU)
	}

	// 添加促销套装（买二送一）
	promotionName := "Cream Duo + Free Soap"
	var promotion models.Promotion
	if err := models.DB.Where("name = ?", promotionName).First(&promotion).Error; err != nil {
		starts := time.Now().Add(-24 * time.Hour)
		ends := time.Now().AddDate(0, 3, 0)
		promotion = models.Promotion{
			CompanyID: 1,
			Name:      promotionName,
			StartsAt:  &starts,
			EndsAt:    &ends,
			IsActive:  true,
			Lines: []models.PromotionLine{
				{ProductID: productIDs["CRM-001"], ProductName: "Herbal Cream 50g", Quantity: 2, OverridePrice: models.NewMoneyFromFloat(250)},
				{ProductID: productIDs["SOP-001"], ProductName: "Charcoal Soap", Quantity: 1, IsFreebie: true},
			},
		}
		if err := models.DB.Create(&promotion).Error; err != nil {
			stdLog.Printf("Failed to create promotion: %v", err)
		} else {
			stdLog.Printf("Created promotion: %s", promotionName)
		}
	} else {
		stdLog.Printf("Promotion already exists: %s", promotionName)
	}

	// 添加收款账户
	bankAccounts := []models.BankAccount{
		{BankName: "Kasikorn Bank", AccountNo: "123-4-56789-0", AccountName: "SalesDesk Co., Ltd.", IsActive: true},
		{BankName: "SCB", AccountNo: "987-6-54321-0", AccountName: "SalesDesk Co., Ltd.", IsActive: true},
	}
	for _, account := range bankAccounts {
		var existing models.BankAccount
		if err := models.DB.Where("account_no = ?", account.AccountNo).First(&existing).Error; err == nil {
			stdLog.Printf("Bank account already exists: %s", account.AccountNo)
			continue
		}
		if err := models.DB.Create(&account).Error; err != nil {
			stdLog.Printf("Failed to create bank account %s: %v", account.AccountNo, err)
		} else {
			stdLog.Printf("Created bank account: %s", account.AccountNo)
		}
	}

	// 添加演示订单（COD 两箱 + 转账待核帐）
	seedOrders(stdLog, productIDs)

	fmt.Println("\nSeed data created.")
	fmt.Println("Summary:")
	fmt.Println("- 5 staff accounts (admin / sale01 / finance01 / warehouse01 / backoffice01)")
	fmt.Println("- 3 customers")
	fmt.Println("- 5 products")
	fmt.Println("- 1 promotion bundle")
	fmt.Println("- 2 bank accounts")
	fmt.Println("- 2 demo orders")
}

func seedOrders(stdLog *log.Logger, productIDs map[string]uint) {
	var customer models.Customer
	if err := models.DB.Order("id ASC").First(&customer).Error; err != nil {
		stdLog.Printf("Skip order seed: no customer available")
		return
	}
	var bankAccount models.BankAccount
	_ = models.DB.Order("id ASC").First(&bankAccount).Error

	dueDate := time.Now().AddDate(0, 0, -3)
	codOrder := models.Order{
		OrderNo:       fmt.Sprintf("SD-%s-0001", time.Now().Format("20060102")),
		CompanyID:     1,
		CustomerID:    customer.ID,
		Status:        constants.OrderStatusShipping,
		PaymentStatus: constants.PaymentStatusPartial,
		PaymentMethod: constants.PaymentMethodCOD,
		Currency:      constants.SiteCurrencyDefault,
		TotalAmount:   models.NewMoneyFromFloat(1070),
		AmountPaid:    models.NewMoneyFromFloat(490),
		DueDate:       &dueDate,
		Note:          "Demo COD order, box 2 outstanding",
	}
	var existing models.Order
	if err := models.DB.Where("order_no = ?", codOrder.OrderNo).First(&existing).Error; err != nil {
		codOrder.Items = []models.OrderItem{
			{Uid: "seed-item-1", ProductID: productIDs["CRM-002"], ProductName: "Herbal Cream 100g", PricePerUnit: models.NewMoneyFromFloat(490), Quantity: 1, BoxNumber: 1, Position: 0},
			{Uid: "seed-item-2", ProductID: productIDs["SRM-001"], ProductName: "Vitamin C Serum", PricePerUnit: models.NewMoneyFromFloat(590), Quantity: 1, Discount: models.NewMoneyFromFloat(10), BoxNumber: 2, Position: 1},
		}
		codOrder.Boxes = []models.Box{
			{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(490), CollectedAmount: models.NewMoneyFromFloat(490), TrackingNo: "TH123456701"},
			{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(580), TrackingNo: "TH123456702"},
		}
		if err := models.DB.Create(&codOrder).Error; err != nil {
			stdLog.Printf("Failed to create demo COD order: %v", err)
		} else {
			stdLog.Printf("Created demo COD order: %s", codOrder.OrderNo)
		}
	} else {
		stdLog.Printf("Demo COD order already exists: %s", codOrder.OrderNo)
	}

	transferOrder := models.Order{
		OrderNo:       fmt.Sprintf("SD-%s-0002", time.Now().Format("20060102")),
		CompanyID:     1,
		CustomerID:    customer.ID,
		Status:        constants.OrderStatusAwaitingVerification,
		PaymentStatus: constants.PaymentStatusPendingVerification,
		PaymentMethod: constants.PaymentMethodTransfer,
		Currency:      constants.SiteCurrencyDefault,
		TotalAmount:   models.NewMoneyFromFloat(290),
		Note:          "Demo transfer order awaiting slip verification",
	}
	if err := models.DB.Where("order_no = ?", transferOrder.OrderNo).First(&existing).Error; err != nil {
		transferOrder.Items = []models.OrderItem{
			{Uid: "seed-item-3", ProductID: productIDs["CRM-001"], ProductName: "Herbal Cream 50g", PricePerUnit: models.NewMoneyFromFloat(290), Quantity: 1, BoxNumber: 1, Position: 0},
		}
		transferDate := time.Now().Add(-2 * time.Hour)
		amount := models.NewMoneyFromFloat(290)
		slip := models.Slip{
			ImagePath:    "/uploads/slips/seed-slip-001.jpg",
			Amount:       &amount,
			TransferDate: &transferDate,
			Note:         "Seeded slip pending check",
		}
		if bankAccount.ID != 0 {
			slip.BankAccountID = &bankAccount.ID
		}
		transferOrder.Slips = []models.Slip{slip}
		if err := models.DB.Create(&transferOrder).Error; err != nil {
			stdLog.Printf("Failed to create demo transfer order: %v", err)
		} else {
			stdLog.Printf("Created demo transfer order: %s", transferOrder.OrderNo)
		}
	} else {
		stdLog.Printf("Demo transfer order already exists: %s", transferOrder.OrderNo)
	}
}
