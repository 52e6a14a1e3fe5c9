package services

import (
	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"

	"go.uber.org/multierr"
)

type (
	statisticsService struct {
		ctx *ctx.Context
	}

	// InterStatisticsService 首页统计服务接口
	InterStatisticsService interface {
		Overview() (interface{}, interface{})
	}
)

func newInterStatisticsService(ctx *ctx.Context) InterStatisticsService {
	return &statisticsService{
		ctx: ctx,
	}
}

// Overview 首页统计数据
// 各计数独立查询，任何一项失败整体失败
func (s *statisticsService) Overview() (interface{}, interface{}) {
	var resp types.ResponseStatistics
	var errors error

	collect := func(fn func() (int64, error), dst *int64) {
		v, err := fn()
		if err != nil {
			errors = multierr.Append(errors, err)
			return
		}
		*dst = v
	}

	collect(s.ctx.DB.Server().Count, &resp.Servers)
	collect(s.ctx.DB.Application().Count, &resp.Applications)
	collect(s.ctx.DB.Service().Count, &resp.Services)
	collect(s.ctx.DB.Dependency().Count, &resp.Dependencies)
	collect(func() (int64, error) {
		return s.ctx.DB.Server().CountByStatus(models.ServerStatusActive)
	}, &resp.ActiveServers)
	collect(func() (int64, error) {
		return s.ctx.DB.Service().CountByStatus(models.ServiceStatusRunning)
	}, &resp.RunningServices)

	byOs, err := s.ctx.DB.Server().CountGroupBy("os_type")
	errors = multierr.Append(errors, err)
	byEnv, err := s.ctx.DB.Server().CountGroupBy("environment")
	errors = multierr.Append(errors, err)
	byCrit, err := s.ctx.DB.Application().CountByCriticality()
	errors = multierr.Append(errors, err)

	if errors != nil {
		return nil, errors.Error()
	}

	resp.ByOSType = byOs
	resp.ByEnvironment = byEnv
	resp.ByCriticality = byCrit
	return resp, nil
}
