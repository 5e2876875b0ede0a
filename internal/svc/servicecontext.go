package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "cotacao-api/internal/cache"
	"cotacao-api/internal/config"
	"cotacao-api/internal/model"
	"cotacao-api/internal/recon"
	"cotacao-api/internal/store"
	"cotacao-api/pkg/scrape"
)

type ServiceContext struct {
	Config config.Config

	DBConn             sqlx.SqlConn
	UsersModel         model.UsersModel
	FinancialDataModel model.FinancialDataModel
	OhlcvBarsModel     model.OhlcvBarsModel

	Cache gocache.Cache
	TTL   cachekeys.TTLSet

	Fetcher *scrape.Fetcher
	Store   *store.Store
	Engine  *recon.Engine
}

func NewServiceContext(c config.Config) *ServiceContext {
	svcCtx := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	scraperCfg := c.Scraper.Value
	if scraperCfg == nil {
		log.Fatal("scraper config section is required")
	}
	svcCtx.Fetcher = scrape.NewFetcherFromConfig(scraperCfg)

	if c.Postgres.DSN == "" {
		log.Fatal("postgres dsn is required")
	}
	conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	svcCtx.DBConn = conn
	svcCtx.UsersModel = model.NewUsersModel(conn)
	svcCtx.FinancialDataModel = model.NewFinancialDataModel(conn)
	svcCtx.OhlcvBarsModel = model.NewOhlcvBarsModel(conn)
	svcCtx.Store = store.New(conn, svcCtx.FinancialDataModel, svcCtx.OhlcvBarsModel)

	if c.Redis.Host != "" {
		svcCtx.Cache = gocache.New(
			gocache.ClusterConf{{RedisConf: c.Redis, Weight: 100}},
			syncx.NewSingleFlight(),
			gocache.NewStat(cachekeys.Namespace),
			sqlc.ErrNotFound,
		)
	}

	svcCtx.Engine = recon.New(recon.Config{
		Fetcher: svcCtx.Fetcher,
		Store:   svcCtx.Store,
		Scraper: *scraperCfg,
		Sync:    c.Sync,
		Cache:   svcCtx.Cache,
		TTL:     svcCtx.TTL,
	})
	return svcCtx
}
