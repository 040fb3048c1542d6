package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tosssim-backend/internal/config"
	"tosssim-backend/internal/handlers"
	"tosssim-backend/internal/middleware"
	"tosssim-backend/internal/services"
	"tosssim-backend/internal/store"
	"tosssim-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLvl); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	kv, err := store.NewRedisKV(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer kv.Close()

	clock := services.NewClock()

	accounts := services.NewAccounts(kv, clock)
	ledger := services.NewLedger(accounts)
	staking := services.NewStaking(ledger, clock)
	bonuses := services.NewBonuses(ledger, clock)
	freePlays := services.NewFreePlays(accounts)
	referrals := services.NewReferrals(accounts)
	history := services.NewHistory(kv, clock)
	wallet := services.NewWallet(ledger, history, nil, cfg.WithdrawalDelay)
	engine := services.NewEngine(ledger, history, nil)

	jwtService := services.NewJWTService(cfg)

	wsHandler := handlers.NewWebSocketHandler(ledger)
	ledger.Subscribe(wsHandler.BroadcastBalance)
	engine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(accounts, jwtService)
	userHandler := handlers.NewUserHandler(accounts, staking, bonuses, referrals)
	walletHandler := handlers.NewWalletHandler(ledger, wallet, history)
	gameHandler := handlers.NewGameHandler(engine, freePlays)
	bonusHandler := handlers.NewBonusHandler(bonuses, staking)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		walletGroup := protected.Group("/wallet")
		{
			walletGroup.GET("/balance", walletHandler.GetBalance)
			walletGroup.POST("/deposit", walletHandler.Deposit)
			walletGroup.POST("/withdraw", walletHandler.Withdraw)
			walletGroup.GET("/transactions", walletHandler.GetTransactions)
			walletGroup.GET("/bets", walletHandler.GetBets)
		}

		games := protected.Group("/games")
		{
			games.POST("/toss", gameHandler.Toss)
			games.POST("/spin", gameHandler.Spin)
			games.GET("/freeplays", gameHandler.GetFreePlays)
		}

		bonus := protected.Group("/bonus")
		{
			bonus.GET("/hourly", bonusHandler.GetHourlyStatus)
			bonus.POST("/hourly", bonusHandler.ClaimHourly)
			bonus.POST("/zero-balance", bonusHandler.ClaimZeroBalance)
		}

		stakingGroup := protected.Group("/staking")
		{
			stakingGroup.GET("", bonusHandler.GetStaking)
			stakingGroup.POST("/stake", bonusHandler.Stake)
			stakingGroup.POST("/unstake", bonusHandler.Unstake)
			stakingGroup.POST("/interest", bonusHandler.ClaimInterest)
		}

		protected.GET("/referral", userHandler.GetReferralCode)
		protected.POST("/referral/redeem", userHandler.RedeemReferral)

		protected.GET("/settings/mute", userHandler.GetMute)
		protected.PUT("/settings/mute", userHandler.SetMute)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	zap.L().Info("Server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zap.L().Fatal("Failed to start server", zap.Error(err))
	}
}
