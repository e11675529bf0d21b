package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"studio/shared/cache"
	"studio/shared/constant"
	"studio/shared/dto"
	"studio/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// TotalPages never returns less than one page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// UpdatedFields collects the non-zero db-tagged fields of a struct, dereferencing pointers,
// and stamps modified_at and modified_by.
func UpdatedFields(data any, actor string) map[string]any {
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	value := reflect.Indirect(reflect.ValueOf(data))
	if value.Kind() != reflect.Struct {
		return fields
	}

	for idx := range value.NumField() {
		column := value.Type().Field(idx).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		field := value.Field(idx)
		if field.IsZero() {
			continue
		}

		fields[column] = reflect.Indirect(field).Interface()
	}

	return fields
}

func FilterByID(id, column, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{dto.Filter{Field: column, Value: id, Operator: dto.FilterOperatorEq, Table: table}},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery hashes the paging and filter of a list request into a key under prefix.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(map[string]any{"params": params, "where": where, "args": args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		raw = fmt.Appendf(nil, "%v|%s|%v", params, where, args)
	}

	sum := sha1.Sum(raw) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches drops prefix itself and every key below it.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, BuildCacheKey(prefix, constant.Asterix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}

	if err := redisCache.Delete(ctx, prefix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
	}
}
