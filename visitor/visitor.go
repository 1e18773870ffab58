// Package visitor 把前端产出的声明序列转换为图模型。
package visitor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/classify"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/core"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/resolver"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/templatearg"
)

// TranslationUnitVisitor 逐条消费一个翻译单元的声明：
// 命名空间解析为包，记录/枚举/函数建模为实体，字段/形参/返回值/基类
// 喂给关系分类器，函数体调用登记为活动。
//
// 每个单元收集到的关系先攒成一批，访问结束后一次性合并进模型，
// 与模型的 single-writer 插入纪律配合。
type TranslationUnitVisitor struct {
	diagram  *model.Diagram
	packages *resolver.PackageResolver
	flt      model.Filter
	rctx     *core.RunContext
	resolve  templatearg.NameResolver
}

// New 创建一个访问器。usingNamespace 用于模板参数显示名的相对化。
func New(d *model.Diagram, pkgs *resolver.PackageResolver, flt model.Filter,
	rctx *core.RunContext, usingNamespace []string) *TranslationUnitVisitor {

	prefix := ""
	if len(usingNamespace) > 0 {
		prefix = resolver.JoinNamespace(usingNamespace) + "::"
	}

	return &TranslationUnitVisitor{
		diagram:  d,
		packages: pkgs,
		flt:      flt,
		rctx:     rctx,
		resolve: func(name string) string {
			if prefix != "" {
				return strings.TrimPrefix(name, prefix)
			}
			return name
		},
	}
}

// Visit 消费一个翻译单元的全部声明
func (v *TranslationUnitVisitor) Visit(tu *frontend.TranslationUnit) {
	log := v.rctx.Logger()
	var batch []model.Relationship

	for i := range tu.Declarations {
		d := &tu.Declarations[i]

		// 系统头里的声明不建模 (命名空间除外，包层级仍需要它们)
		if d.InSystemHeader && d.Kind != frontend.DeclNamespace {
			continue
		}

		switch d.Kind {
		case frontend.DeclNamespace:
			v.visitNamespace(d)
		case frontend.DeclRecord:
			v.visitRecord(d, &batch)
		case frontend.DeclEnum:
			v.visitEnum(d)
		case frontend.DeclFunction:
			v.visitFunction(d, &batch)
		default:
			log.Debug("skipping declaration of unknown kind",
				zap.String("kind", string(d.Kind)),
				zap.String("name", d.QualifiedName))
		}
	}

	v.diagram.AddRelationships(batch)
}

func (v *TranslationUnitVisitor) visitNamespace(d *frontend.Declaration) {
	path := append(append([]string{}, d.Namespace...), d.Name)

	p, created := v.packages.Resolve(path)
	if p == nil || !created {
		return
	}

	// 属性只在首次创建时拷贝
	p.Deprecated = d.Deprecated
	p.Location = d.Location

	v.rctx.Logger().Debug("modeled namespace package",
		zap.String("package", p.QualifiedName()))
}

func (v *TranslationUnitVisitor) visitRecord(d *frontend.Declaration, batch *[]model.Relationship) {
	log := v.rctx.Logger()

	// 策略检查先于任何 ID/关系创建：被排除的实体不获得归属
	nsPath := resolver.JoinNamespace(d.Namespace)
	if v.flt != nil && !v.flt.ShouldInclude(nsPath) {
		return
	}

	name := d.Name
	if name == "" {
		name = v.rctx.AnonymousName()
	}
	qn := d.QualifiedName
	if qn == "" {
		qn = qualify(d.Namespace, d.RecordChain, name)
	}

	e := &model.Entity{
		ID:            model.ToID(qn),
		Kind:          model.KindClass,
		Name:          name,
		QualifiedName: qn,
		Namespace:     append([]string{}, d.Namespace...),
		Access:        d.Access,
		Deprecated:    d.Deprecated,
		Location:      d.Location,
	}

	if d.TemplateArgText != "" {
		// 前端无法结构化解析的模板实参：重建结构化参数树
		e.TemplateArgs = templatearg.ParseParams(d.TemplateArgText, v.resolve)
	}

	if !v.diagram.AddEntity(e) {
		// 同一定义在别的翻译单元里已被建模，关系也已采集过
		return
	}
	v.packages.Resolve(d.Namespace)

	v.processBases(e, d, batch)

	var found []classify.Found
	for _, m := range d.Members {
		classify.FindRelationships(m.Type, &found, model.Dependency, v.flt)
	}
	for mi := range d.Methods {
		m := &d.Methods[mi]
		classify.FindRelationships(m.ReturnType, &found, model.Dependency, v.flt)
		for _, p := range m.Params {
			classify.FindRelationships(p, &found, model.Dependency, v.flt)
		}
		v.registerActivity(qn, m.Name, m.Calls)
	}
	for _, f := range d.Friends {
		if f == nil || f.Kind == model.ShapeUnexposed {
			log.Debug("skipping unresolvable friend declaration",
				zap.String("record", qn))
			continue
		}
		classify.FindRelationships(f, &found, model.Dependency, v.flt)
	}

	v.appendFound(e.ID, found, batch)
}

// processBases 单独记录继承边，再把基类类型整体喂给分类器，
// 以便找出基类自身模板实参里的依赖目标。
func (v *TranslationUnitVisitor) processBases(e *model.Entity, d *frontend.Declaration, batch *[]model.Relationship) {
	for _, base := range d.Bases {
		if base == nil {
			continue
		}

		baseID := model.NoID
		if (base.Kind == model.ShapeRecord || base.Kind == model.ShapeTemplate) && base.Name != "" {
			if v.flt == nil || v.flt.ShouldInclude(resolver.JoinNamespace(base.Namespace)) {
				baseID = model.ToID(base.Name)
				*batch = append(*batch, model.Relationship{
					Source: e.ID,
					Target: baseID,
					Kind:   model.Inheritance,
				})
			}
		}

		var found []classify.Found
		classify.FindRelationships(base, &found, model.Dependency, v.flt)
		for _, f := range found {
			if f.Target == baseID {
				// 继承边已单独记录，不再重复为依赖
				continue
			}
			if f.Target != e.ID {
				*batch = append(*batch, model.Relationship{Source: e.ID, Target: f.Target, Kind: f.Kind})
			}
		}
	}
}

func (v *TranslationUnitVisitor) visitEnum(d *frontend.Declaration) {
	nsPath := resolver.JoinNamespace(d.Namespace)
	if v.flt != nil && !v.flt.ShouldInclude(nsPath) {
		return
	}

	name := d.Name
	if name == "" {
		name = v.rctx.AnonymousName()
	}
	qn := d.QualifiedName
	if qn == "" {
		qn = qualify(d.Namespace, d.RecordChain, name)
	}

	e := &model.Entity{
		ID:            model.ToID(qn),
		Kind:          model.KindEnum,
		Name:          name,
		QualifiedName: qn,
		Namespace:     append([]string{}, d.Namespace...),
		Access:        d.Access,
		Deprecated:    d.Deprecated,
		Location:      d.Location,
	}
	if v.diagram.AddEntity(e) {
		v.packages.Resolve(d.Namespace)
	}
}

func (v *TranslationUnitVisitor) visitFunction(d *frontend.Declaration, batch *[]model.Relationship) {
	nsPath := resolver.JoinNamespace(d.Namespace)
	if v.flt != nil && !v.flt.ShouldInclude(nsPath) {
		return
	}

	qn := d.QualifiedName
	if qn == "" {
		qn = qualify(d.Namespace, nil, d.Name)
	}

	e := &model.Entity{
		ID:            model.ToID(qn),
		Kind:          model.KindFunction,
		Name:          d.Name,
		QualifiedName: qn,
		Namespace:     append([]string{}, d.Namespace...),
		Deprecated:    d.Deprecated,
		Location:      d.Location,
	}
	if !v.diagram.AddEntity(e) {
		return
	}
	v.packages.Resolve(d.Namespace)

	var found []classify.Found
	classify.FindRelationships(d.ReturnType, &found, model.Dependency, v.flt)
	for _, p := range d.Params {
		classify.FindRelationships(p, &found, model.Dependency, v.flt)
	}
	v.appendFound(e.ID, found, batch)

	// 自由函数自己就是时序参与者
	v.registerActivityFor(qn, qn, d.Calls)
}

// registerActivity 为一个方法登记调用活动，参与者为所属记录
func (v *TranslationUnitVisitor) registerActivity(ownerQN, methodName string, calls []frontend.Call) {
	if len(calls) == 0 {
		return
	}
	v.registerActivityFor(resolver.BuildQualifiedName(ownerQN, methodName), ownerQN, calls)
}

func (v *TranslationUnitVisitor) registerActivityFor(calleeQN, participant string, calls []frontend.Call) {
	if len(calls) == 0 {
		return
	}

	act := &model.Activity{
		ID:   model.ToID(calleeQN),
		From: participant,
	}
	for _, c := range calls {
		act.AddMessage(model.Message{
			Kind:       model.MessageCall,
			From:       model.ToID(participant),
			To:         model.ToID(c.CalleeParticipant),
			Callee:     model.ToID(c.CalleeQualifiedName),
			FromName:   participant,
			ToName:     c.CalleeParticipant,
			Label:      c.Label,
			ReturnType: c.ReturnTypeName,
		})
	}
	v.diagram.AddActivity(act)
}

// appendFound 把分类器结果转为关系批，抑制自环
func (v *TranslationUnitVisitor) appendFound(source model.ID, found []classify.Found, batch *[]model.Relationship) {
	for _, f := range found {
		if f.Target == source {
			continue
		}
		*batch = append(*batch, model.Relationship{Source: source, Target: f.Target, Kind: f.Kind})
	}
}

// qualify 拼出 ns::Outer::Name 形式的限定名
func qualify(namespace, recordChain []string, name string) string {
	parts := make([]string, 0, len(namespace)+len(recordChain)+1)
	parts = append(parts, namespace...)
	parts = append(parts, recordChain...)
	parts = append(parts, name)
	return strings.Join(parts, "::")
}
