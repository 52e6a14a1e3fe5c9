package services

import (
	"fmt"

	"cmdbHub/internal/ctx"
	"cmdbHub/internal/models"
	"cmdbHub/internal/types"
	"cmdbHub/pkg/errs"

	"gorm.io/gorm"
)

type (
	dependencyGraphService struct {
		ctx *ctx.Context
	}

	// InterDependencyGraphService 服务依赖图服务接口
	// 维护服务间的有向依赖边并回答影响面查询
	InterDependencyGraphService interface {
		// Add 添加依赖边 source -> target
		// source == target 返回 ValidationError；任一服务不存在返回 NotFoundError
		// 已存在的边按 upsert 处理，不报错也不重复
		Add(req *types.RequestDependencyAdd) (*models.Dependency, error)
		// Remove 删除依赖边，边不存在时为 no-op
		Remove(sourceId, targetId int64) error
		// Graph 返回某服务的出入边视图
		Graph(serviceId int64) (*types.ResponseServiceGraph, error)
		// ListDependents X 挂了会影响谁
		ListDependents(serviceId int64) ([]models.Service, error)
		// ListDependencies X 正常工作需要谁
		ListDependencies(serviceId int64) ([]models.Service, error)
		// DetectCycles 返回处于任意依赖环上的全部服务
		// 仅用于报告，不拦截写入
		DetectCycles() (*types.ResponseCycleReport, error)
		// List 全部依赖边
		List() ([]models.Dependency, error)
	}
)

func newInterDependencyGraphService(ctx *ctx.Context) InterDependencyGraphService {
	return &dependencyGraphService{
		ctx: ctx,
	}
}

// requireLiveService 确认服务存在且未被软删除
func (d *dependencyGraphService) requireLiveService(id int64) error {
	if _, err := d.ctx.DB.Service().GetById(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NewNotFound("服务", fmt.Sprintf("%d", id))
		}
		return errs.NewStore("查询服务", err)
	}
	return nil
}

// Add 添加依赖边
func (d *dependencyGraphService) Add(req *types.RequestDependencyAdd) (*models.Dependency, error) {
	if req.SourceServiceID == req.TargetServiceID {
		return nil, errs.NewValidation("依赖不允许指向自身", "sourceServiceId", "targetServiceId")
	}

	if err := d.requireLiveService(req.SourceServiceID); err != nil {
		return nil, err
	}
	if err := d.requireLiveService(req.TargetServiceID); err != nil {
		return nil, err
	}

	depType := req.DependencyType
	if depType == "" {
		depType = "requires"
	}

	dep := models.Dependency{
		SourceServiceID: req.SourceServiceID,
		TargetServiceID: req.TargetServiceID,
		DependencyType:  depType,
		Description:     req.Description,
	}
	if err := d.ctx.DB.Dependency().Upsert(dep); err != nil {
		return nil, errs.NewStore("写入依赖边", err)
	}

	// upsert 不回填主键，重新按有序对取一次，保证返回体带真实 ID
	saved, err := d.ctx.DB.Dependency().GetByPair(req.SourceServiceID, req.TargetServiceID)
	if err != nil {
		return nil, errs.NewStore("查询依赖边", err)
	}
	if saved == nil {
		return nil, errs.NewStore("查询依赖边", gorm.ErrRecordNotFound)
	}

	return saved, nil
}

// Remove 删除依赖边，不存在时静默成功
func (d *dependencyGraphService) Remove(sourceId, targetId int64) error {
	if err := d.ctx.DB.Dependency().Delete(sourceId, targetId); err != nil {
		return errs.NewStore("删除依赖边", err)
	}
	return nil
}

// Graph 某服务的出入边视图
// 无任何边的服务返回两个空列表，不是错误
func (d *dependencyGraphService) Graph(serviceId int64) (*types.ResponseServiceGraph, error) {
	if err := d.requireLiveService(serviceId); err != nil {
		return nil, err
	}

	dependencies, err := d.ListDependencies(serviceId)
	if err != nil {
		return nil, err
	}
	dependents, err := d.ListDependents(serviceId)
	if err != nil {
		return nil, err
	}

	return &types.ResponseServiceGraph{
		ServiceID:    serviceId,
		Dependencies: dependencies,
		Dependents:   dependents,
	}, nil
}

func (d *dependencyGraphService) ListDependents(serviceId int64) ([]models.Service, error) {
	list, err := d.ctx.DB.Dependency().ListDependents(serviceId)
	if err != nil {
		return nil, errs.NewStore("查询影响面", err)
	}
	return list, nil
}

func (d *dependencyGraphService) ListDependencies(serviceId int64) ([]models.Service, error) {
	list, err := d.ctx.DB.Dependency().ListDependencies(serviceId)
	if err != nil {
		return nil, errs.NewStore("查询依赖项", err)
	}
	return list, nil
}

// DetectCycles 环检测
// 对存活服务的依赖边求强连通分量，规模大于1的分量即为环上的服务集合
// （自环在写入时已被拒绝，不需要单独处理规模为1的分量）
func (d *dependencyGraphService) DetectCycles() (*types.ResponseCycleReport, error) {
	edges, err := d.ctx.DB.Dependency().ListAllEdges()
	if err != nil {
		return nil, errs.NewStore("加载依赖边", err)
	}

	cycleIds := findCycleMembers(edges)
	report := &types.ResponseCycleReport{
		HasCycle: len(cycleIds) > 0,
		Services: make([]models.Service, 0, len(cycleIds)),
	}

	for _, id := range cycleIds {
		service, err := d.ctx.DB.Service().GetById(id)
		if err != nil {
			continue
		}
		report.Services = append(report.Services, service)
	}

	return report, nil
}

// List 全部依赖边
func (d *dependencyGraphService) List() ([]models.Dependency, error) {
	list, err := d.ctx.DB.Dependency().ListAll()
	if err != nil {
		return nil, errs.NewStore("查询依赖边列表", err)
	}
	return list, nil
}

// findCycleMembers Tarjan 强连通分量，返回环上的服务ID（升序遍历顺序）
// 显式栈迭代实现，避免大图上的递归深度问题
func findCycleMembers(edges []models.Dependency) []int64 {
	adj := make(map[int64][]int64)
	nodes := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, e := range edges {
		adj[e.SourceServiceID] = append(adj[e.SourceServiceID], e.TargetServiceID)
		for _, id := range []int64{e.SourceServiceID, e.TargetServiceID} {
			if !seen[id] {
				seen[id] = true
				nodes = append(nodes, id)
			}
		}
	}

	index := make(map[int64]int)
	lowlink := make(map[int64]int)
	onStack := make(map[int64]bool)
	var stack []int64
	counter := 0

	var result []int64

	type frame struct {
		node int64
		next int
	}

	for _, start := range nodes {
		if _, visited := index[start]; visited {
			continue
		}

		callStack := []frame{{node: start}}
		index[start] = counter
		lowlink[start] = counter
		counter++
		stack = append(stack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.node

			if top.next < len(adj[v]) {
				w := adj[v][top.next]
				top.next++

				if _, visited := index[w]; !visited {
					index[w] = counter
					lowlink[w] = counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					callStack = append(callStack, frame{node: w})
				} else if onStack[w] {
					if index[w] < lowlink[v] {
						lowlink[v] = index[w]
					}
				}
				continue
			}

			// v 的全部出边处理完毕，回溯
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] == index[v] {
				// 弹出一个强连通分量
				var component []int64
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					component = append(component, w)
					if w == v {
						break
					}
				}
				if len(component) > 1 {
					result = append(result, component...)
				}
			}
		}
	}

	return result
}
