package registry

import (
	"cmdbHub/internal/ctx"
)

// ApiEndpoint 表示单个API接口
type ApiEndpoint struct {
	Path        string `json:"path"`        // API路径
	Method      string `json:"method"`      // HTTP方法
	Description string `json:"description"` // 接口描述
	Group       string `json:"group"`       // 接口分组
}

// ApiRegistry API注册表，用于接口自描述
type ApiRegistry struct {
	ctx *ctx.Context
}

// NewApiRegistry 创建新的API注册表实例
func NewApiRegistry(ctx *ctx.Context) *ApiRegistry {
	return &ApiRegistry{
		ctx: ctx,
	}
}

// GetAllApiEndpoints 获取系统中所有API接口的完整列表
// 新增路由时同步维护这里
func (r *ApiRegistry) GetAllApiEndpoints() []ApiEndpoint {
	return []ApiEndpoint{
		// 服务器管理
		{"/api/cmdb/server/serverCreate", "POST", "创建服务器", "服务器管理"},
		{"/api/cmdb/server/serverUpdate", "POST", "更新服务器", "服务器管理"},
		{"/api/cmdb/server/serverDelete", "POST", "删除服务器", "服务器管理"},
		{"/api/cmdb/server/serverList", "GET", "获取服务器列表", "服务器管理"},
		{"/api/cmdb/server/serverDetail", "GET", "获取服务器详情", "服务器管理"},

		// 应用管理
		{"/api/cmdb/application/applicationCreate", "POST", "创建应用", "应用管理"},
		{"/api/cmdb/application/applicationUpdate", "POST", "更新应用", "应用管理"},
		{"/api/cmdb/application/applicationDelete", "POST", "删除应用", "应用管理"},
		{"/api/cmdb/application/applicationList", "GET", "获取应用列表", "应用管理"},
		{"/api/cmdb/application/applicationDetail", "GET", "获取应用详情", "应用管理"},

		// 服务管理
		{"/api/cmdb/service/serviceCreate", "POST", "创建服务", "服务管理"},
		{"/api/cmdb/service/serviceUpdate", "POST", "更新服务", "服务管理"},
		{"/api/cmdb/service/serviceDelete", "POST", "删除服务", "服务管理"},
		{"/api/cmdb/service/serviceList", "GET", "获取服务列表", "服务管理"},
		{"/api/cmdb/service/serviceDetail", "GET", "获取服务详情", "服务管理"},

		// 服务依赖图
		{"/api/cmdb/dependency/dependencyAdd", "POST", "添加依赖边", "服务依赖"},
		{"/api/cmdb/dependency/dependencyRemove", "POST", "删除依赖边", "服务依赖"},
		{"/api/cmdb/dependency/dependencyList", "GET", "获取依赖边列表", "服务依赖"},
		{"/api/cmdb/dependency/serviceGraph", "GET", "获取服务依赖视图", "服务依赖"},
		{"/api/cmdb/dependency/listDependents", "GET", "查询影响面(谁依赖它)", "服务依赖"},
		{"/api/cmdb/dependency/listDependencies", "GET", "查询依赖项(它依赖谁)", "服务依赖"},
		{"/api/cmdb/dependency/detectCycles", "GET", "检测依赖环", "服务依赖"},

		// 自动发现
		{"/api/cmdb/discovery/discoveryRun", "POST", "执行发现批次", "自动发现"},
		{"/api/cmdb/discovery/discoveryRediscover", "POST", "重新发现已纳管主机", "自动发现"},
		{"/api/cmdb/discovery/discoveryHistory", "GET", "获取发现历史", "自动发现"},

		// 导入导出
		{"/api/cmdb/transfer/importServers", "POST", "导入服务器CSV", "导入导出"},
		{"/api/cmdb/transfer/importApplications", "POST", "导入应用CSV", "导入导出"},
		{"/api/cmdb/transfer/exportServers", "GET", "导出服务器CSV", "导入导出"},
		{"/api/cmdb/transfer/exportApplications", "GET", "导出应用CSV", "导入导出"},
		{"/api/cmdb/transfer/exportServices", "GET", "导出服务CSV", "导入导出"},
		{"/api/cmdb/transfer/exportDependencies", "GET", "导出依赖边CSV", "导入导出"},

		// 系统
		{"/api/system/getDashboardStatistics", "GET", "获取首页统计数据", "系统"},
		{"/api/system/listAuditLog", "GET", "获取审计日志列表", "系统"},
		{"/api/system/listApiEndpoints", "GET", "获取API接口列表", "系统"},
		{"/api/system/version", "GET", "获取服务版本", "系统"},
	}
}
