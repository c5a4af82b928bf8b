package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"himalayandays/config"
	"himalayandays/infras/otel"
	"himalayandays/internal/domains/tour/model"
	"himalayandays/internal/domains/tour/model/dto"
	"himalayandays/internal/domains/tour/repository"
	"himalayandays/shared"
	"himalayandays/shared/cache"
	"himalayandays/shared/constant"
	gDto "himalayandays/shared/dto"
	"himalayandays/shared/failure"
	"himalayandays/shared/timezone"
)

const (
	cacheGetAllPackage = "package:gets"
	cacheCountPackage  = "package:count"
	cacheSitemap       = "package:sitemap"
)

// staticRoutes are the fixed public pages listed in the sitemap ahead of the
// per-package URLs.
var staticRoutes = []string{"/", "/about", "/contact", "/packages"}

type Tour interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Publish(ctx context.Context, req dto.PublishPackageRequest, id string) error
	Delete(ctx context.Context, id string) error
	Sitemap(ctx context.Context) (dto.Sitemap, error)
}

type serviceImpl struct {
	repo  repository.Package
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Package, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tour {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create rejects a slug that is already taken: slugs are public URLs.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(req.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check package slug: %w", err)
	}

	if taken {
		return failure.Conflict("slug is already in use") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create package")

		return fmt.Errorf("failed to create package: %w", err)
	}

	s.invalidatePackageCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	packages, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(packages, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found") //nolint:wrapcheck
	}

	res.FromModel(pkg)

	return res, nil
}

// GetBySlug serves the public package page. Unpublished packages do not
// exist as far as the public site is concerned.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	pkg, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package by slug")

		return res, fmt.Errorf("failed to get package by slug: %w", err)
	}

	if pkg.ID == constant.Empty || !pkg.IsPublished {
		return res, failure.NotFound("package not found") //nolint:wrapcheck
	}

	res.FromModel(pkg)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePackageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") //nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidatePackageCaches(ctx)

	return nil
}

func (s *serviceImpl) Publish(ctx context.Context, req dto.PublishPackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldIsPublished:   req.IsPublished,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to publish package")

		return fmt.Errorf("failed to publish package: %w", err)
	}

	s.invalidatePackageCaches(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidatePackageCaches(ctx)

	return nil
}

// Sitemap lists the static public pages, then one entry per published
// package with the package's last modification date.
func (s *serviceImpl) Sitemap(ctx context.Context) (res dto.Sitemap, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sitemap")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheSitemap, &res)
	if err == nil {
		return res, nil
	}

	baseURL := strings.TrimSuffix(s.cfg.App.BaseURL, "/")

	res.Xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"
	res.URLs = make([]dto.SitemapURL, 0, len(staticRoutes))

	for _, route := range staticRoutes {
		res.URLs = append(res.URLs, dto.SitemapURL{Loc: baseURL + route})
	}

	published := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsPublished,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldSlug, SortDir: gDto.SortDirAsc}

	packages, err := s.repo.GetAll(ctx, params, published)
	if err != nil {
		log.Error().Err(err).Msg("failed to get published packages")

		return res, fmt.Errorf("failed to get published packages: %w", err)
	}

	for _, pkg := range packages {
		res.URLs = append(res.URLs, dto.SitemapURL{
			Loc:     baseURL + "/packages/" + pkg.Slug,
			LastMod: pkg.ModifiedAt.Format(constant.DateOnlyFormat),
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheSitemap, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sitemap to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidatePackageCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
		shared.InvalidateCaches(c, s.cache, cacheSitemap)
	}()
}
