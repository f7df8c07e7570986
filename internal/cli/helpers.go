package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// errAmbiguousID is returned when an id prefix matches several items.
var errAmbiguousID = errors.New("ambiguous item id prefix")

// minIDPrefix is the shortest id prefix accepted by resolveItem.
const minIDPrefix = 4

// openStore attaches the configured backend. The caller must Detach it.
// An unknown backend is a configuration mistake and so a user error.
func (a *app) openStore() (types.Store, error) {
	s, err := store.Open(types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: a.dataDir,
	})
	if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
		return nil, fmt.Errorf("config %s: %w", cfgKeyBackend, err)
	}
	if err != nil {
		return nil, sysErr(fmt.Errorf("open store: %w", err))
	}
	return s, nil
}

// load reads the current snapshot.
func (a *app) load() (*types.Snapshot, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Detach()

	snap, err := s.Load()
	if err != nil {
		return nil, sysErr(fmt.Errorf("load: %w", err))
	}
	return snap, nil
}

// update loads the snapshot, applies fn, and saves the result. Nothing is
// written when fn fails.
func (a *app) update(fn func(snap *types.Snapshot) error) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Detach()

	snap, err := s.Load()
	if err != nil {
		return sysErr(fmt.Errorf("load: %w", err))
	}
	if err := fn(snap); err != nil {
		return err
	}
	if err := s.Save(snap); err != nil {
		return sysErr(fmt.Errorf("save: %w", err))
	}
	cliLog.Info("snapshot_updated",
		slog.String("user", a.session.User),
		slog.Int("items", len(snap.Items)))
	return nil
}

// listLimit returns flagValue when set, otherwise the configured default.
func (a *app) listLimit(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return a.cfg.GetInt(cfgKeyListLimit)
}

// parseAssignments converts key=value arguments into attributes, typing
// each value by the category's resolved field. An empty value yields a
// null, which UpdateItem treats as removal.
func parseAssignments(snap *types.Snapshot, categoryID string, args []string) ([]types.Attr, error) {
	typeOf := make(map[string]types.FieldType)
	for _, f := range catalog.ResolveFields(snap, categoryID) {
		typeOf[f.Key] = f.Type
	}

	attrs := make([]types.Attr, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", arg)
		}
		if types.IsReservedKey(key) {
			return nil, fmt.Errorf("%w: %q", types.ErrReservedKey, key)
		}
		v := types.NullValue()
		if raw != "" {
			v = types.ParseValue(raw, typeOf[key])
		}
		attrs = append(attrs, types.Attr{Key: key, Value: v})
	}
	return attrs, nil
}

// withoutNulls drops null attributes, which mean nothing on a new item.
func withoutNulls(attrs []types.Attr) []types.Attr {
	out := attrs[:0:0]
	for _, a := range attrs {
		if !a.Value.IsNull() {
			out = append(out, a)
		}
	}
	return out
}

// parsePairs splits key=value flags into a map; later keys win.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid pair %q (expected key=value)", p)
		}
		out[k] = v
	}
	return out, nil
}

// resolveCategories maps each reference to a category id.
func resolveCategories(snap *types.Snapshot, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		c, err := catalog.FindCategory(snap, ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, ref)
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// resolveItem finds an item by full id or by a unique id prefix of at
// least minIDPrefix characters.
func resolveItem(snap *types.Snapshot, ref string) (types.Item, error) {
	if it, ok := snap.Item(ref); ok {
		return it, nil
	}
	if len(ref) < minIDPrefix {
		return types.Item{}, fmt.Errorf("%w: item %q", types.ErrNotFound, ref)
	}
	var found []types.Item
	for _, it := range snap.Items {
		if strings.HasPrefix(it.ID, ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return types.Item{}, fmt.Errorf("%w: item %q", types.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return types.Item{}, fmt.Errorf("%w: %q matches %d items", errAmbiguousID, ref, len(found))
	}
}
