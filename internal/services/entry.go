package services

import (
	"cmdbHub/internal/ctx"
)

var (
	ServerService          InterServerService
	ApplicationService     InterApplicationService
	ServiceManageService   InterServiceManageService
	DependencyGraphService InterDependencyGraphService
	ReconcileService       InterReconcileService
	DiscoveryService       InterDiscoveryService
	TransferService        InterTransferService
	StatisticsService      InterStatisticsService
	AuditLogService        InterAuditLogService
)

func NewServices(ctx *ctx.Context) {
	ServerService = newInterServerService(ctx)
	ApplicationService = newInterApplicationService(ctx)
	ServiceManageService = newInterServiceManageService(ctx)
	DependencyGraphService = newInterDependencyGraphService(ctx)
	ReconcileService = newInterReconcileService(ctx)
	DiscoveryService = newInterDiscoveryService(ctx)   // DiscoveryService 依赖 ReconcileService
	TransferService = newInterTransferService(ctx)     // TransferService 依赖 ReconcileService
	StatisticsService = newInterStatisticsService(ctx)
	AuditLogService = newInterAuditLogService(ctx)
}
