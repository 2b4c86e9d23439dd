/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package badgerdb

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/kindstore/storagemodels"
)

// encodedRecord is the JSON form of a StoredRecord.
type encodedRecord struct {
	Kind     string                  `json:"kind"`
	ID       string                  `json:"id"`
	StoredAt strfmt.DateTime         `json:"storedAt"`
	Item     map[string]encodedValue `json:"item"`
}

// encodedValue is a JSON-encodable AttributeValue. S and N share Str; SS and NS share Strs.
type encodedValue struct {
	Type string                  `json:"t"`
	Str  string                  `json:"s,omitempty"`
	Bin  []byte                  `json:"b,omitempty"`
	Bool bool                    `json:"bool,omitempty"`
	Strs []string                `json:"ss,omitempty"`
	Bins [][]byte                `json:"bs,omitempty"`
	M    map[string]encodedValue `json:"m,omitempty"`
	L    []encodedValue          `json:"l,omitempty"`
}

func encodeRecord(record storagemodels.StoredRecord) ([]byte, error) {
	item, err := encodeMap(record.Item)
	if err != nil {
		return nil, fmt.Errorf("encode %s %q: %w", record.Kind, record.ID, err)
	}
	data, err := json.Marshal(encodedRecord{
		Kind:     record.Kind,
		ID:       record.ID,
		StoredAt: record.StoredAt,
		Item:     item,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s %q: %w", record.Kind, record.ID, err)
	}
	return data, nil
}

func decodeRecord(data []byte) (storagemodels.StoredRecord, error) {
	var enc encodedRecord
	if err := json.Unmarshal(data, &enc); err != nil {
		return storagemodels.StoredRecord{}, fmt.Errorf("decode record: %w", err)
	}
	item, err := decodeMap(enc.Item)
	if err != nil {
		return storagemodels.StoredRecord{}, fmt.Errorf("decode %s %q: %w", enc.Kind, enc.ID, err)
	}
	return storagemodels.StoredRecord{
		Kind:     enc.Kind,
		ID:       enc.ID,
		StoredAt: enc.StoredAt,
		Item:     item,
	}, nil
}

func encodeMap(item map[string]types.AttributeValue) (map[string]encodedValue, error) {
	out := make(map[string]encodedValue, len(item))
	for k, v := range item {
		ev, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = ev
	}
	return out, nil
}

func encodeValue(av types.AttributeValue) (encodedValue, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return encodedValue{Type: "S", Str: v.Value}, nil
	case *types.AttributeValueMemberN:
		return encodedValue{Type: "N", Str: v.Value}, nil
	case *types.AttributeValueMemberB:
		return encodedValue{Type: "B", Bin: v.Value}, nil
	case *types.AttributeValueMemberBOOL:
		return encodedValue{Type: "BOOL", Bool: v.Value}, nil
	case *types.AttributeValueMemberNULL:
		return encodedValue{Type: "NULL", Bool: v.Value}, nil
	case *types.AttributeValueMemberSS:
		return encodedValue{Type: "SS", Strs: v.Value}, nil
	case *types.AttributeValueMemberNS:
		return encodedValue{Type: "NS", Strs: v.Value}, nil
	case *types.AttributeValueMemberBS:
		return encodedValue{Type: "BS", Bins: v.Value}, nil
	case *types.AttributeValueMemberM:
		m, err := encodeMap(v.Value)
		if err != nil {
			return encodedValue{}, err
		}
		return encodedValue{Type: "M", M: m}, nil
	case *types.AttributeValueMemberL:
		l := make([]encodedValue, 0, len(v.Value))
		for i, elem := range v.Value {
			ev, err := encodeValue(elem)
			if err != nil {
				return encodedValue{}, fmt.Errorf("index %d: %w", i, err)
			}
			l = append(l, ev)
		}
		return encodedValue{Type: "L", L: l}, nil
	default:
		return encodedValue{}, fmt.Errorf("unsupported attribute value %T", av)
	}
}

func decodeMap(item map[string]encodedValue) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		av, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

func decodeValue(ev encodedValue) (types.AttributeValue, error) {
	switch ev.Type {
	case "S":
		return &types.AttributeValueMemberS{Value: ev.Str}, nil
	case "N":
		return &types.AttributeValueMemberN{Value: ev.Str}, nil
	case "B":
		return &types.AttributeValueMemberB{Value: ev.Bin}, nil
	case "BOOL":
		return &types.AttributeValueMemberBOOL{Value: ev.Bool}, nil
	case "NULL":
		return &types.AttributeValueMemberNULL{Value: ev.Bool}, nil
	case "SS":
		return &types.AttributeValueMemberSS{Value: ev.Strs}, nil
	case "NS":
		return &types.AttributeValueMemberNS{Value: ev.Strs}, nil
	case "BS":
		return &types.AttributeValueMemberBS{Value: ev.Bins}, nil
	case "M":
		m, err := decodeMap(ev.M)
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	case "L":
		l := make([]types.AttributeValue, 0, len(ev.L))
		for i, elem := range ev.L {
			av, err := decodeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			l = append(l, av)
		}
		return &types.AttributeValueMemberL{Value: l}, nil
	default:
		return nil, fmt.Errorf("unknown attribute type %q", ev.Type)
	}
}
