// Package seed contiene el conjunto de datos de demostración con el que arranca
// el almacén en memoria y que cmd/migrate puede cargar en PostgreSQL.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

// DemoPassword contraseña de los usuarios de demostración que no son el administrador.
const DemoPassword = "demo12345"

// Credentials usuario administrador de plataforma.
type Credentials struct {
	Email    string
	Password string
}

// Dataset colecciones iniciales.
type Dataset struct {
	BusinessTypes []*entity.BusinessType
	Enterprises   []*entity.Enterprise
	Packages      []*entity.SubscriptionPackage
	Subscriptions []*entity.Subscription
	Currencies    []*entity.CurrencyRate
	Notifications []*entity.Notification
	Users         []*entity.User
}

// Build arma el conjunto de datos relativo a now. Las contraseñas se hashean con bcrypt.
func Build(now time.Time, admin Credentials) (*Dataset, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash admin: %w", err)
	}
	demoHash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash demo: %w", err)
	}
	day := 24 * time.Hour
	ago := func(days int) time.Time { return now.Add(-time.Duration(days) * day) }
	in := func(days int) time.Time { return now.Add(time.Duration(days) * day) }
	d := decimal.RequireFromString

	tech := &entity.BusinessType{
		ID: "bt_1", Name: "Công nghệ thông tin", Code: "TECH",
		Description:      "Doanh nghiệp phần mềm và dịch vụ công nghệ",
		Category:         "technology",
		Features:         []string{entity.FeatureHR, entity.FeatureFinance, entity.FeatureReports, entity.FeatureAPIAccess},
		DefaultUserLimit: 50, IsActive: true, CreatedAt: ago(400), UpdatedAt: ago(400),
	}
	retail := &entity.BusinessType{
		ID: "bt_2", Name: "Bán lẻ", Code: "RETAIL",
		Description:      "Cửa hàng và chuỗi bán lẻ",
		Category:         "retail",
		Features:         []string{entity.FeatureInventory, entity.FeatureStorefront, entity.FeatureReports},
		DefaultUserLimit: 20, IsActive: true, CreatedAt: ago(390), UpdatedAt: ago(390),
	}
	mfg := &entity.BusinessType{
		ID: "bt_3", Name: "Sản xuất", Code: "MFG",
		Description:      "Nhà máy và cơ sở sản xuất",
		Category:         "manufacturing",
		Features:         []string{entity.FeatureInventory, entity.FeatureHR, entity.FeatureMultiBranch},
		DefaultUserLimit: 100, IsActive: false, CreatedAt: ago(380), UpdatedAt: ago(100),
	}

	enterprises := []*entity.Enterprise{
		{
			ID: "ent_1", Name: "Công ty TNHH Giải pháp ABC", Code: "ABC",
			BusinessType: tech.Ref(), TaxCode: "0101234567",
			Address: "12 Lý Thường Kiệt, Hoàn Kiếm, Hà Nội", Phone: "024 3825 1234",
			Email: "lienhe@abc.com.vn", Website: "https://abc.com.vn",
			ContactPerson: entity.ContactPerson{Name: "Nguyễn Văn An", Position: "Giám đốc", Phone: "0912 345 678", Email: "an.nguyen@abc.com.vn"},
			Status:        entity.EnterprisePending, SubscriptionPlan: entity.PlanPremium,
			SubscriptionExpiry: in(20), UserLimit: 50, CurrentUserCount: 18,
			Features:         []string{entity.FeatureHR, entity.FeatureFinance, entity.FeatureReports},
			RegistrationDate: ago(10), LastActivity: ago(1), CreatedAt: ago(10), UpdatedAt: ago(1),
		},
		{
			ID: "ent_2", Name: "Công ty Cổ phần Phần mềm Sao Việt", Code: "SAOVIET",
			BusinessType: tech.Ref(), TaxCode: "0309876543",
			Address: "45 Nguyễn Huệ, Quận 1, TP. Hồ Chí Minh", Phone: "028 3822 5678",
			Email: "info@saoviet.vn", Website: "https://saoviet.vn",
			ContactPerson: entity.ContactPerson{Name: "Trần Thị Bình", Position: "Trưởng phòng IT", Phone: "0987 654 321", Email: "binh.tran@saoviet.vn"},
			Status:        entity.EnterprisePending, SubscriptionPlan: entity.PlanPremium,
			SubscriptionExpiry: in(5), UserLimit: 50, CurrentUserCount: 7,
			Features:         []string{entity.FeatureHR, entity.FeatureAPIAccess},
			RegistrationDate: ago(25), LastActivity: ago(2), CreatedAt: ago(25), UpdatedAt: ago(2),
		},
		{
			ID: "ent_3", Name: "Chuỗi cửa hàng Minh Phát", Code: "MINHPHAT",
			BusinessType: retail.Ref(), TaxCode: "0401122334",
			Address: "88 Trần Phú, Hải Châu, Đà Nẵng", Phone: "0236 356 7890",
			Email:         "contact@minhphat.vn",
			ContactPerson: entity.ContactPerson{Name: "Lê Minh Cường", Position: "Chủ cửa hàng", Phone: "0905 111 222", Email: "cuong.le@minhphat.vn"},
			Status:        entity.EnterprisePending, SubscriptionPlan: entity.PlanBasic,
			SubscriptionExpiry: ago(3), UserLimit: 20, CurrentUserCount: 4,
			Features:         []string{entity.FeatureInventory, entity.FeatureStorefront},
			RegistrationDate: ago(45), LastActivity: ago(4), CreatedAt: ago(45), UpdatedAt: ago(4),
		},
	}

	packages := []*entity.SubscriptionPackage{
		{
			ID: "pkg_1", Name: "Gói Cơ bản", Code: "BASIC", Description: "Dành cho doanh nghiệp nhỏ",
			Price:    entity.PackagePrice{Monthly: d("500000"), Yearly: d("5000000"), Currency: "VND"},
			Features: []string{entity.FeatureHR, entity.FeatureReports},
			Limits:   entity.PackageLimits{Users: 10, StorageGB: 5, APICalls: 1000, Projects: 3, Support: entity.SupportBasic},
			IsActive: true, Category: entity.PackageBasic, TrialDays: 14, SetupFee: decimal.Zero,
			BillingCycle: entity.BillingMonthly, CreatedAt: ago(365), UpdatedAt: ago(365),
		},
		{
			ID: "pkg_2", Name: "Gói Chuyên nghiệp", Code: "PREMIUM", Description: "Đầy đủ tính năng cho doanh nghiệp vừa",
			Price:     entity.PackagePrice{Monthly: d("1500000"), Yearly: d("15000000"), Currency: "VND"},
			Features:  []string{entity.FeatureHR, entity.FeatureFinance, entity.FeatureReports, entity.FeatureAPIAccess},
			Limits:    entity.PackageLimits{Users: 50, StorageGB: 50, APICalls: 20000, Projects: 20, Support: entity.SupportPriority},
			IsPopular: true, IsActive: true, Category: entity.PackagePremium, TrialDays: 30, SetupFee: d("1000000"),
			BillingCycle: entity.BillingMonthly, CreatedAt: ago(365), UpdatedAt: ago(200),
		},
		{
			ID: "pkg_3", Name: "Gói Doanh nghiệp", Code: "ENTERPRISE", Description: "Không giới hạn, hỗ trợ riêng",
			Price:    entity.PackagePrice{Monthly: d("5000000"), Yearly: d("50000000"), Currency: "VND"},
			Features: []string{entity.FeatureHR, entity.FeatureFinance, entity.FeatureReports, entity.FeatureAPIAccess, entity.FeatureMultiBranch, entity.FeatureAuditLogs},
			Limits:   entity.PackageLimits{Support: entity.SupportDedicated},
			IsActive: true, Category: entity.PackageEnterprise, SetupFee: d("5000000"),
			BillingCycle: entity.BillingYearly, CreatedAt: ago(365), UpdatedAt: ago(365),
		},
	}

	subscriptions := []*entity.Subscription{
		{
			ID: "sub_1", EnterpriseID: "ent_1", EnterpriseName: enterprises[0].Name,
			PackageID: "pkg_2", PackageName: packages[1].Name,
			Status: entity.SubscriptionActive, BillingCycle: entity.BillingMonthly,
			Amount: d("1500000"), Currency: "VND", StartDate: ago(10), EndDate: in(20), AutoRenew: true,
			CreatedAt: ago(10), UpdatedAt: ago(10),
		},
		{
			ID: "sub_2", EnterpriseID: "ent_2", EnterpriseName: enterprises[1].Name,
			PackageID: "pkg_2", PackageName: packages[1].Name,
			Status: entity.SubscriptionTrial, BillingCycle: entity.BillingMonthly,
			Amount: decimal.Zero, Currency: "VND", StartDate: ago(25), EndDate: in(5), AutoRenew: true,
			CreatedAt: ago(25), UpdatedAt: ago(25),
		},
		{
			ID: "sub_3", EnterpriseID: "ent_3", EnterpriseName: enterprises[2].Name,
			PackageID: "pkg_1", PackageName: packages[0].Name,
			Status: entity.SubscriptionActive, BillingCycle: entity.BillingMonthly,
			Amount: d("500000"), Currency: "VND", StartDate: ago(33), EndDate: ago(3),
			CreatedAt: ago(45), UpdatedAt: ago(33),
		},
	}

	currencies := []*entity.CurrencyRate{
		{ID: "cur_1", Code: "VND", Name: "Việt Nam Đồng", Symbol: "₫", Rate: d("1"), IsBaseCurrency: true, IsActive: true},
		{ID: "cur_2", Code: "USD", Name: "Đô la Mỹ", Symbol: "$", Rate: d("0.00004"), IsActive: true},
		{ID: "cur_3", Code: "EUR", Name: "Euro", Symbol: "€", Rate: d("0.000037"), IsActive: true},
		{ID: "cur_4", Code: "JPY", Name: "Yên Nhật", Symbol: "¥", Rate: d("0.0059"), IsActive: true},
		{ID: "cur_5", Code: "CNY", Name: "Nhân dân tệ", Symbol: "¥", Rate: d("0.00028"), IsActive: false},
	}
	for i, c := range currencies {
		c.LastUpdated = ago(1)
		c.CreatedAt = ago(300 - i)
		c.UpdatedAt = ago(1)
	}

	adminUser := &entity.User{
		ID: "usr_admin", Email: admin.Email, PasswordHash: string(adminHash),
		Name: "Quản trị hệ thống", Role: entity.RoleAdmin, Status: entity.UserActive,
		CreatedAt: ago(400), UpdatedAt: ago(400),
	}
	users := []*entity.User{
		adminUser,
		{
			ID: "usr_manager_abc", EnterpriseID: "ent_1", Email: "an.nguyen@abc.com.vn", PasswordHash: string(demoHash),
			Name: "Nguyễn Văn An", Role: entity.RoleManager, Status: entity.UserActive, CreatedAt: ago(10), UpdatedAt: ago(10),
		},
		{
			ID: "usr_employee_sv", EnterpriseID: "ent_2", Email: "binh.tran@saoviet.vn", PasswordHash: string(demoHash),
			Name: "Trần Thị Bình", Role: entity.RoleEmployee, Status: entity.UserActive, CreatedAt: ago(25), UpdatedAt: ago(25),
		},
	}

	sentAt, scheduledAt, expires := ago(2), in(1), in(30)
	notifications := []*entity.Notification{
		{
			ID: "ntf_1", Title: "Bảo trì hệ thống", Message: "Hệ thống sẽ bảo trì từ 22:00 đến 23:00 Chủ nhật.",
			Type: entity.NotificationAnnouncement, Priority: entity.PriorityHigh,
			Sender: adminUser.Summary(), Recipients: entity.Recipients{Type: entity.RecipientsAll},
			Status: entity.NotificationSent, SentAt: &sentAt, ExpiresAt: &expires,
			ReadBy:   []entity.ReadReceipt{{UserID: "usr_manager_abc", ReadAt: ago(1)}},
			Actions:  []entity.NotificationAction{{Label: "Xem chi tiết", URL: "/maintenance", Type: "primary"}},
			IsActive: true, Metadata: entity.NotificationMetadata{TotalRecipients: 3, ReadCount: 1, ClickCount: 1},
			CreatedAt: ago(3), UpdatedAt: ago(1),
		},
		{
			ID: "ntf_2", Title: "Gia hạn gói dịch vụ", Message: "Gói dịch vụ của bạn sắp hết hạn, vui lòng gia hạn.",
			Type: entity.NotificationWarning, Priority: entity.PriorityMedium,
			Sender: adminUser.Summary(), Recipients: entity.Recipients{Type: entity.RecipientsEnterprise, EnterpriseIDs: []string{"ent_2"}},
			Status: entity.NotificationScheduled, ScheduledAt: &scheduledAt,
			ReadBy: []entity.ReadReceipt{}, Actions: []entity.NotificationAction{},
			IsActive: true, CreatedAt: ago(1), UpdatedAt: ago(1),
		},
		{
			ID: "ntf_3", Title: "Tính năng mới", Message: "Báo cáo tài chính đã hỗ trợ xuất Excel.",
			Type: entity.NotificationInfo, Priority: entity.PriorityLow,
			Sender: adminUser.Summary(), Recipients: entity.Recipients{Type: entity.RecipientsRole, Roles: []string{entity.RoleManager}},
			Status: entity.NotificationDraft,
			ReadBy: []entity.ReadReceipt{}, Actions: []entity.NotificationAction{},
			IsActive: true, CreatedAt: now, UpdatedAt: now,
		},
	}

	return &Dataset{
		BusinessTypes: []*entity.BusinessType{tech, retail, mfg},
		Enterprises:   enterprises,
		Packages:      packages,
		Subscriptions: subscriptions,
		Currencies:    currencies,
		Notifications: notifications,
		Users:         users,
	}, nil
}

// Repositories destinos de la carga.
type Repositories struct {
	BusinessTypes repository.BusinessTypeRepository
	Enterprises   repository.EnterpriseRepository
	Packages      repository.PackageRepository
	Subscriptions repository.SubscriptionRepository
	Currencies    repository.CurrencyRepository
	Notifications repository.NotificationRepository
	Users         repository.UserRepository
}

// Load inserta el conjunto de datos a través de los repositorios, en orden de dependencias.
func Load(ctx context.Context, r Repositories, ds *Dataset) error {
	for _, v := range ds.BusinessTypes {
		if err := r.BusinessTypes.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: business type %s: %w", v.Code, err)
		}
	}
	for _, v := range ds.Enterprises {
		if err := r.Enterprises.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: enterprise %s: %w", v.Code, err)
		}
	}
	for _, v := range ds.Packages {
		if err := r.Packages.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: package %s: %w", v.Code, err)
		}
	}
	for _, v := range ds.Subscriptions {
		if err := r.Subscriptions.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: subscription %s: %w", v.ID, err)
		}
	}
	if err := r.Currencies.SaveAll(ctx, ds.Currencies); err != nil {
		return fmt.Errorf("seed: currencies: %w", err)
	}
	for _, v := range ds.Users {
		if err := r.Users.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: user %s: %w", v.Email, err)
		}
	}
	for _, v := range ds.Notifications {
		if err := r.Notifications.Create(ctx, v); err != nil {
			return fmt.Errorf("seed: notification %s: %w", v.ID, err)
		}
	}
	return nil
}
