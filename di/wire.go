//go:build wireinject
// +build wireinject

package di

import (
	"himalayandays/config"
	"himalayandays/infras/jwt"
	"himalayandays/infras/kafka"
	"himalayandays/infras/otel"
	"himalayandays/infras/postgres"
	"himalayandays/infras/redis"
	"himalayandays/infras/s3"
	"himalayandays/infras/telegram"
	"himalayandays/permissions"
	"himalayandays/shared/cache"
	"himalayandays/transport/http"
	"himalayandays/transport/http/middleware"
	"himalayandays/transport/http/router"

	"github.com/google/wire"

	applicationRepository "himalayandays/internal/domains/application/repository"
	applicationService "himalayandays/internal/domains/application/service"
	authService "himalayandays/internal/domains/auth/service"
	bookingRepository "himalayandays/internal/domains/booking/repository"
	bookingService "himalayandays/internal/domains/booking/service"
	hotelRepository "himalayandays/internal/domains/hotel/repository"
	hotelService "himalayandays/internal/domains/hotel/service"
	inquiryRepository "himalayandays/internal/domains/inquiry/repository"
	inquiryService "himalayandays/internal/domains/inquiry/service"
	mediaService "himalayandays/internal/domains/media/service"
	subscriberRepository "himalayandays/internal/domains/subscriber/repository"
	subscriberService "himalayandays/internal/domains/subscriber/service"
	tourRepository "himalayandays/internal/domains/tour/repository"
	tourService "himalayandays/internal/domains/tour/service"
	userRepository "himalayandays/internal/domains/user/repository"
	userService "himalayandays/internal/domains/user/service"

	applicationHandler "himalayandays/internal/handlers/application"
	authHandler "himalayandays/internal/handlers/auth"
	bookingHandler "himalayandays/internal/handlers/booking"
	hotelHandler "himalayandays/internal/handlers/hotel"
	inquiryHandler "himalayandays/internal/handlers/inquiry"
	mediaHandler "himalayandays/internal/handlers/media"
	subscriberHandler "himalayandays/internal/handlers/subscriber"
	tourHandler "himalayandays/internal/handlers/tour"
	userHandler "himalayandays/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	telegram.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.NewHotel,
	hotelRepository.NewRoomType,
	hotelRepository.NewRoomRate,
	hotelService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewCustomer,
	bookingRepository.NewBooking,
	bookingRepository.NewPayment,
	bookingRepository.NewExpense,
	bookingService.New,
)

var subscriberDomain = wire.NewSet(
	subscriberRepository.New,
	subscriberService.New,
)

var applicationDomain = wire.NewSet(
	applicationRepository.New,
	applicationService.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourService.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var domains = wire.NewSet(
	authDomain,
	hotelDomain,
	inquiryDomain,
	bookingDomain,
	subscriberDomain,
	applicationDomain,
	tourDomain,
	mediaDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	inquiryHandler.New,
	bookingHandler.New,
	subscriberHandler.New,
	applicationHandler.New,
	tourHandler.New,
	mediaHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
