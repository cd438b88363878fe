package container

import (
	"context"
	"fmt"
	"time"

	"biblioteca-console/internal/config"
	"biblioteca-console/internal/gateway"
	infraCache "biblioteca-console/internal/infrastructure/cache"
	"biblioteca-console/internal/session"
	"biblioteca-console/internal/workflow"
	"biblioteca-console/pkg/cache"
	"biblioteca-console/pkg/logger"

	"biblioteca-console/internal/domains/auth"
	authHandler "biblioteca-console/internal/domains/auth/handler"
	authService "biblioteca-console/internal/domains/auth/service"
	"biblioteca-console/internal/domains/book"
	bookHandler "biblioteca-console/internal/domains/book/handler"
	bookService "biblioteca-console/internal/domains/book/service"
	"biblioteca-console/internal/domains/category"
	categoryHandler "biblioteca-console/internal/domains/category/handler"
	categoryService "biblioteca-console/internal/domains/category/service"
	dashboardHandler "biblioteca-console/internal/domains/dashboard/handler"
	"biblioteca-console/internal/domains/fine"
	fineHandler "biblioteca-console/internal/domains/fine/handler"
	fineService "biblioteca-console/internal/domains/fine/service"
	"biblioteca-console/internal/domains/loan"
	loanHandler "biblioteca-console/internal/domains/loan/handler"
	loanService "biblioteca-console/internal/domains/loan/service"
	"biblioteca-console/internal/domains/member"
	memberHandler "biblioteca-console/internal/domains/member/handler"
	memberService "biblioteca-console/internal/domains/member/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; initialization order is config, then
// infrastructure, then services, then the coordinator, then handlers.
type Container struct {
	Config   *config.Config
	Cache    cache.Cache
	Gateway  *gateway.Client
	Sessions *session.Store

	CategoryService category.Service
	BookService     book.Service
	MemberService   member.Service
	LoanService     loan.Service
	FineService     fine.Service
	AuthService     auth.Service

	Workflow *workflow.Coordinator

	CategoryHandler  *categoryHandler.CategoryHandler
	BookHandler      *bookHandler.BookHandler
	MemberHandler    *memberHandler.MemberHandler
	LoanHandler      *loanHandler.LoanHandler
	FineHandler      *fineHandler.FineHandler
	AuthHandler      *authHandler.AuthHandler
	DashboardHandler *dashboardHandler.DashboardHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"backend":     cfg.Backend.BaseURL,
	})

	// A cache outage is not fatal: sessions and the member-number
	// allocator degrade, everything else keeps working.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := redisCache.Connect(ctx); err != nil {
		logger.Warn("redis connection failed, sessions will not survive", err)
	}
	c.Cache = redisCache

	c.Gateway = gateway.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	c.CategoryService = categoryService.NewCategoryService(c.Gateway)
	c.BookService = bookService.NewBookService(c.Gateway)
	c.MemberService = memberService.NewMemberService(c.Gateway)
	c.LoanService = loanService.NewLoanService(c.Gateway)
	c.FineService = fineService.NewFineService(c.Gateway)
	c.AuthService = authService.NewAuthService(c.Gateway)

	c.Workflow = workflow.NewCoordinator(c.BookService, c.MemberService, c.LoanService, c.FineService, c.Cache)

	c.Sessions = session.NewStore(c.Cache, time.Duration(cfg.Session.TTLHours)*time.Hour)

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.CategoryService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService, c.Workflow)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService, c.BookService, c.MemberService, c.Workflow)
	c.FineHandler = fineHandler.NewFineHandler(c.FineService, c.Workflow)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService, c.Sessions, cfg.Session.CookieName, cfg.Session.CookieSecure)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.BookService, c.MemberService, c.LoanService, c.FineService)

	logger.Info("container initialized", nil)
	return c, nil
}

// Cleanup releases infrastructure connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("close redis", err)
			}
		}
	}
	logger.Info("container cleanup completed", nil)
}
