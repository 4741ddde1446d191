package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/salesdesk-next/internal/authz"
	"github.com/salesdesk-next/internal/cache"
	"github.com/salesdesk-next/internal/config"
	"github.com/salesdesk-next/internal/constants"
	backofficehandlers "github.com/salesdesk-next/internal/http/handlers/backoffice"
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := backofficehandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（转账回单图片）
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		backoffice := apiV1.Group("/backoffice")
		{
			// 登录接口（无需鉴权）
			backoffice.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), handler.Login)

			// 个人接口（仅 JWT 鉴权，不做 RBAC）
			account := backoffice.Group("")
			account.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				account.GET("/me", handler.Me)
				account.PUT("/password", handler.ChangePassword)
			}

			// 业务接口（JWT + RBAC 鉴权）
			authorized := backoffice.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 订单
				authorized.GET("/orders", handler.ListOrders)
				authorized.POST("/orders", handler.CreateOrder)
				authorized.POST("/orders/preview", handler.PreviewOrder)
				authorized.GET("/orders/:id", handler.GetOrder)
				authorized.PUT("/orders/:id", handler.SaveOrder)
				authorized.PATCH("/orders/:id/status", handler.UpdateOrderStatus)

				// 转账回单与核帐
				authorized.GET("/orders/:id/slips", handler.ListOrderSlips)
				authorized.POST("/orders/:id/slips", handler.UploadSlip)
				authorized.PUT("/slips/:id", handler.UpdateSlip)
				authorized.DELETE("/slips/:id", handler.DeleteSlip)
				authorized.POST("/slips/:id/check", handler.CheckSlip)
				authorized.POST("/orders/:id/accept-verification", handler.AcceptVerification)
				authorized.POST("/orders/:id/cancel-verification", handler.CancelVerification)
				authorized.GET("/orders/:id/reconcile-summary", handler.ReconcileSummary)

				// 促销套装
				authorized.GET("/promotions", handler.ListPromotions)
				authorized.POST("/promotions", handler.CreatePromotion)
				authorized.PUT("/promotions/:id", handler.UpdatePromotion)
				authorized.DELETE("/promotions/:id", handler.DeletePromotion)

				// 商品
				authorized.GET("/products", handler.ListProducts)
				authorized.POST("/products", handler.CreateProduct)
				authorized.PUT("/products/:id", handler.UpdateProduct)

				// 客户
				authorized.GET("/customers", handler.ListCustomers)
				authorized.POST("/customers", handler.CreateCustomer)
				authorized.GET("/customers/:id", handler.GetCustomer)
				authorized.PUT("/customers/:id", handler.UpdateCustomer)

				// 收款账户
				authorized.GET("/bank-accounts", handler.ListBankAccounts)
				authorized.POST("/bank-accounts", handler.CreateBankAccount)
				authorized.PUT("/bank-accounts/:id", handler.UpdateBankAccount)

				// 欠款催收
				authorized.GET("/debts", handler.ListOverdueOrders)
				authorized.GET("/debts/follow-ups", handler.ListFollowUps)
				authorized.POST("/debts/follow-ups", handler.LogFollowUp)

				// 员工与权限
				authorized.GET("/admins", handler.ListAdmins)
				authorized.POST("/admins", handler.CreateAdmin)
				authorized.PUT("/admins/:id", handler.UpdateAdmin)
				authorized.DELETE("/admins/:id", handler.DeleteAdmin)
				authorized.GET("/admins/:id/roles", handler.GetAdminRoles)
				authorized.PUT("/admins/:id/roles", handler.SetAdminRoles)
				authorized.GET("/authz/roles", handler.ListRoles)
				authorized.GET("/authz/roles/:role/policies", handler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", handler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", handler.RevokeRolePolicy)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/backoffice/") {
			continue
		}
		if item.Path == "/api/v1/backoffice/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "backoffice" {
		return segments[0]
	}
	if segments[1] == "authz" || segments[1] == "admins" {
		return "authz"
	}
	return segments[1]
}
