package execution

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/types"
	"github.com/veldt-io/graphql/validation"
)

// fieldTask is one pending unit of work produced by CollectFields.
// Tasks keep their production order; Resolve joins results in that
// order no matter which task completes first.
type fieldTask struct {
	key   string
	sync  bool
	value interface{}
	run   func(ctx context.Context) (interface{}, error)
}

// TaskList accumulates pending field tasks in declaration order.
type TaskList struct {
	tasks []*fieldTask
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Resolve executes every field requested by ctx's selection items
// against root and joins the results into an object whose key order is
// the declaration order of the fully fragment-expanded selection.
//
// Execution is fail-fast: the first task to return an error (in
// completion order) cancels the shared context, the remaining sibling
// tasks are expected to honor that cancellation, and their partial
// results are discarded.
func Resolve(ctx *Context, root Resolvable) (*OrderedMap, error) {
	tasks := &TaskList{}
	if err := CollectFields(ctx, root, tasks); err != nil {
		return nil, err
	}

	results := make([]interface{}, len(tasks.tasks))
	group, groupCtx := errgroup.WithContext(ctx.Context)
	for i, task := range tasks.tasks {
		if task.sync {
			results[i] = task.value
			continue
		}
		i, task := i, task
		group.Go(func() (err error) {
			// A panic anywhere in the task, extension hooks included,
			// is fatal to this field only.
			defer func() {
				if panicErr := recover(); panicErr != nil {
					err = errors.New("graphql: panic: %v", panicErr)
				}
			}()
			value, err := task.run(groupCtx)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := NewOrderedMap()
	for i, task := range tasks.tasks {
		out.Set(task.key, results[i])
	}
	return out, nil
}

// CollectFields expands ctx's selection items into pending field tasks.
// Fragment spreads are flattened in place and inline fragments are
// narrowed through root, so the task order equals the declaration order
// of the expanded selection.
func CollectFields(ctx *Context, root Resolvable, tasks *TaskList) error {
	if len(ctx.Items) == 0 {
		return errors.EmptySelection(root.TypeName())
	}

	for _, item := range ctx.Items {
		switch sel := item.(type) {
		case *ast.Field:
			include, err := ctx.shouldInclude(sel.Directives)
			if err != nil {
				return err
			}
			if !include {
				continue
			}
			if sel.Name == "__typename" {
				// Resolved synchronously from the runtime type,
				// bypassing normal field dispatch.
				tasks.tasks = append(tasks.tasks, &fieldTask{
					key:   sel.ResultKey(),
					sync:  true,
					value: root.TypeName(),
				})
				continue
			}
			tasks.tasks = append(tasks.tasks, collectField(ctx, root, sel))

		case *ast.FragmentSpread:
			include, err := ctx.shouldInclude(sel.Directives)
			if err != nil {
				return err
			}
			if !include {
				continue
			}
			fragment, ok := ctx.Fragments[sel.Name]
			if !ok {
				return errors.UnknownFragment(sel.Name)
			}
			if err := CollectFields(ctx.WithSelectionSet(fragment.SelectionSet, ctx.ParentType), root, tasks); err != nil {
				return err
			}

		case *ast.InlineFragment:
			include, err := ctx.shouldInclude(sel.Directives)
			if err != nil {
				return err
			}
			if !include {
				continue
			}
			sub := ctx.WithSelectionSet(sel.SelectionSet, ctx.ParentType)
			if sel.TypeCondition != "" {
				if err := root.CollectInline(sel.TypeCondition, sub, tasks); err != nil {
					return err
				}
			} else if err := CollectFields(sub, root, tasks); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectField(ctx *Context, root Resolvable, field *ast.Field) *fieldTask {
	parentType := ctx.ParentType
	return &fieldTask{
		key: field.ResultKey(),
		run: func(std context.Context) (interface{}, error) {
			taskCtx := ctx.withStdContext(std)

			parent, ok := taskCtx.Registry.Types[parentType]
			if !ok {
				return nil, errors.FieldNotFound(field.Name, parentType)
			}
			declared := types.FieldByName(parent, field.Name)
			if declared == nil {
				err := errors.FieldNotFound(field.Name, parentType)
				err.Path = taskCtx.PathNode.WithName(field.ResultKey()).Path()
				err.Locations = []errors.Location{field.Loc}
				return nil, err
			}

			childName, nameErr := types.ConcreteName(declared.Type)
			if nameErr != nil {
				return nil, nameErr
			}
			childCtx := taskCtx.WithField(field, childName)

			if err := validateArguments(childCtx, declared, field); err != nil {
				return nil, err
			}

			if len(taskCtx.Extensions) > 0 {
				id := taskCtx.nextResolveID()
				info := &ResolveInfo{
					ResolveID:  id,
					PathNode:   childCtx.PathNode,
					ParentType: parentType,
					ReturnType: declared.Type,
				}
				for _, ext := range taskCtx.Extensions {
					ext.ResolveFieldStart(info)
				}
				defer func() {
					for _, ext := range taskCtx.Extensions {
						ext.ResolveFieldEnd(id)
					}
				}()
			}

			taskCtx.MergeCacheControl(declared.CacheControl)
			if obj, ok := taskCtx.Registry.Types[childName].(*types.Object); ok {
				taskCtx.MergeCacheControl(obj.CacheControl)
			}

			value, err := safeResolve(childCtx, root, field)
			if err != nil {
				return nil, errors.FieldError(childCtx.PathNode, err)
			}
			return completeValue(childCtx, value)
		},
	}
}

// validateArguments checks every provided argument value against its
// declared input type, running the argument's validator capability
// first when one is attached.
func validateArguments(ctx *Context, declared *types.Field, field *ast.Field) error {
	for name, arg := range declared.Args {
		value, ok := field.Arguments[name]
		if !ok {
			continue
		}
		node := ctx.PathNode.WithName(name)
		if arg.Validator != nil {
			if _, isVar := value.(ast.Variable); !isVar {
				if reason := arg.Validator.Validate(value); reason != "" {
					return errors.ValidationFailure(node, reason)
				}
			}
		}
		if reason := validation.IsValidValue(ctx.Registry, arg.Type, value, node); reason != "" {
			return errors.ValidationFailure(node, reason)
		}
	}
	return nil
}

// safeResolve delegates to the root's field-resolution capability,
// converting a panic into an error for that field alone.
func safeResolve(ctx *Context, root Resolvable, field *ast.Field) (value interface{}, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			value, err = nil, fmt.Errorf("graphql: panic: %v\n%s", panicErr, buf)
		}
	}()
	return root.ResolveField(ctx, field.Name, ctx.Arguments(field))
}

// completeValue resolves composite results recursively: a Resolvable
// value starts its own nested batch over the field's sub-selection, and
// list elements are completed at an indexed path.
func completeValue(ctx *Context, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if child, ok := value.(Resolvable); ok {
		rv := reflect.ValueOf(child)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, nil
		}
		return Resolve(ctx, child)
	}
	if list, ok := value.([]interface{}); ok {
		items := make([]interface{}, len(list))
		for i, elem := range list {
			resolved, err := completeValue(ctx.WithIndex(i), elem)
			if err != nil {
				return nil, err
			}
			items[i] = resolved
		}
		return items, nil
	}
	return value, nil
}
