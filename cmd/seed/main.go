package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/config"
	"github.com/snazzify/snazzpay-backend/internal/db"
	"github.com/snazzify/snazzpay-backend/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Order{}, &model.Lead{}, &model.ShaktiCard{}, &model.Notification{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var existing int64
	if err := gdb.WithContext(ctx).Model(&model.Order{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if existing > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("orders already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	orders := buildSeedOrders()
	leads := buildSeedLeads()
	if err := gdb.WithContext(ctx).Create(&orders).Error; err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := gdb.WithContext(ctx).Create(&leads).Error; err != nil {
		return fmt.Errorf("seed leads: %w", err)
	}
	log.Printf("seeded %d orders and %d leads", len(orders), len(leads))
	return nil
}

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func buildSeedOrders() []model.Order {
	return []model.Order{
		{
			OrderRef:          "SNZ-DEMO0001",
			Product:           "Handloom cotton saree",
			Quantity:          1,
			Price:             price("1499.00"),
			CustomerName:      "Asha Patel",
			CustomerEmail:     "asha@example.com",
			ContactNo:         "9876543210",
			CustomerAddress:   "14 MG Road, Pune",
			Pincode:           "411001",
			PaymentStatus:     model.OrderStatusAuthorized,
			DeliveryStatus:    model.DeliveryStatusPending,
			SellerID:          "seller-01",
			Source:            "Seller",
			GatewayOrderID:    "order_demo_001",
			PaymentID:         "pay_demo_001",
			CancellationToken: uuid.NewString(),
		},
		{
			OrderRef:          "SNZ-DEMO0002",
			Product:           "Brass table lamp",
			Quantity:          2,
			Price:             price("2400.00"),
			CustomerName:      "Rohan Iyer",
			ContactNo:         "+91 91234-56780",
			CustomerAddress:   "5 Park Street, Kolkata",
			Pincode:           "700016",
			PaymentStatus:     model.OrderStatusPaid,
			DeliveryStatus:    model.DeliveryStatusDispatched,
			TrackingNumber:    "TRK99100234",
			CourierCompany:    "Delhivery",
			SellerID:          "seller-02",
			Source:            "Shopify",
			GatewayOrderID:    "order_demo_002",
			PaymentID:         "pay_demo_002",
			CancellationToken: uuid.NewString(),
		},
	}
}

func buildSeedLeads() []model.Lead {
	return []model.Lead{
		{
			Product:      "Jute tote bag",
			Quantity:     3,
			Price:        price("897.00"),
			CustomerName: "Meera Nair",
			ContactNo:    "9898989898",
			Pincode:      "682001",
			Status:       model.LeadStatusNew,
			Source:       "Collaborator",
		},
		{
			Product:      "Terracotta planter set",
			Quantity:     1,
			Price:        price("650.00"),
			CustomerName: "Vikram Singh",
			ContactNo:    "09812345678",
			Pincode:      "302001",
			Status:       model.LeadStatusIntentVerified,
			Source:       "Seller",
		},
	}
}
