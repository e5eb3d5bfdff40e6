package router

import (
	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/controller/http/v1/file"
	"fitura/backend/internal/middleware"
	"fitura/backend/internal/pkg/clock"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/repository/postgres/attendance"
	"fitura/backend/internal/repository/postgres/client"
	"fitura/backend/internal/repository/postgres/dashboard"
	"fitura/backend/internal/repository/postgres/gyminfo"
	"fitura/backend/internal/repository/postgres/membership"
	"fitura/backend/internal/repository/postgres/user"
	"fitura/backend/internal/service/dayclose"
	"fitura/backend/internal/service/ledger"

	"github.com/redis/go-redis/v9"

	attendance_controller "fitura/backend/internal/controller/http/v1/attendance"
	auth_controller "fitura/backend/internal/controller/http/v1/auth"
	client_controller "fitura/backend/internal/controller/http/v1/client"
	dashboard_controller "fitura/backend/internal/controller/http/v1/dashboard"
	gyminfo_controller "fitura/backend/internal/controller/http/v1/gyminfo"
	membership_controller "fitura/backend/internal/controller/http/v1/membership"
	user_controller "fitura/backend/internal/controller/http/v1/user"
)

type Router struct {
	*web.App
	postgresDB         *postgresql.Database
	redisDB            *redis.Client
	port               string
	auth               *auth.Auth
	jwtKey             string
	fileServerBasePath string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	jwtKey string,
	fileServerBasePath string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		jwtKey,
		fileServerBasePath,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	clientPostgres := client.NewRepository(r.postgresDB)
	membershipPostgres := membership.NewRepository(r.postgresDB)
	gymInfoPostgres := gyminfo.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	dashboardPostgres := dashboard.NewRepository(r.postgresDB, r.redisDB)

	// attendance core
	sweeper := dayclose.NewSweeper(attendancePostgres, clock.Real{})
	attendanceLedger := ledger.NewService(attendancePostgres, clientPostgres, sweeper)

	// controller
	authController := auth_controller.NewController(userPostgres, r.jwtKey)
	userController := user_controller.NewController(userPostgres)
	clientController := client_controller.NewController(clientPostgres)
	membershipController := membership_controller.NewController(membershipPostgres)
	gymInfoController := gyminfo_controller.NewController(gymInfoPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, attendanceLedger, gymInfoPostgres)
	dashboardController := dashboard_controller.NewController(dashboardPostgres)

	fileC := file.NewController(r.App, r.fileServerBasePath)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	r.GET("/media/*filepath", fileC.File)
	r.HEAD("/media/*filepath", fileC.File)
	r.Post("/api/v1/upload", fileC.Upload, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))

	// #user
	r.Get("/api/v1/user/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/user/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/user/:id", userController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #client
	r.Get("/api/v1/client/list", clientController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception, auth.RoleDashboard))
	r.Get("/api/v1/client/expiring", clientController.GetExpiring, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Get("/api/v1/client/qrcode", clientController.GetQrCode, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Get("/api/v1/client/qrcodelist", clientController.GetQrCodeList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/client/export", clientController.Export, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/client/:id", clientController.GetDetailByNumber, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Get("/api/v1/client/:id/receipt", clientController.Receipt, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Post("/api/v1/client/create", clientController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Post("/api/v1/client/import_csv", clientController.ImportCsv, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/client/fix-ids", clientController.FixNumbers, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/client/:id", clientController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Delete("/api/v1/client/:id", clientController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #membership
	r.Get("/api/v1/membership/list", membershipController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception, auth.RoleDashboard))
	r.Get("/api/v1/membership/:id", membershipController.GetDetailByNumber, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Post("/api/v1/membership/create", membershipController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/membership/fix-ids", membershipController.FixNumbers, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/membership/:id", membershipController.UpdateAll, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/membership/:id", membershipController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/membership/:id", membershipController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception, auth.RoleDashboard))
	r.Get("/api/v1/attendance/auto-checkout", attendanceController.AutoCheckout, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Post("/api/v1/attendance/create", attendanceController.CheckIn, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #gym_info
	r.Get("/api/v1/gym_info/list", gymInfoController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleReception))
	r.Put("/api/v1/gym_info/:id", gymInfoController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #dashboard
	r.Get("/api/v1/dashboard/stats", dashboardController.GetStats, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDashboard))

	return r.Run(r.port)
}
