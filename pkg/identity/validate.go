package identity

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Validate checks req and returns an immutable copy. Checks run in a fixed
// order and the first violation is returned:
//
//  1. minimum signatures within 1..len(primary addresses)
//  2. name present
//  3. at least one primary address
//  4. every content map key and value is hex of at most 20 and 32 bytes
//
// Content map entries are checked in key order.
func Validate(req Request, logger *zap.Logger) (*ValidatedRequest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if req.MinimumSignatures != nil && len(req.PrimaryAddresses) > 0 {
		n := *req.MinimumSignatures
		if n == 0 {
			return nil, &ValidationError{Field: "minimum_signatures", Err: ErrInvalidMinimumSignatures}
		}
		if int(n) > len(req.PrimaryAddresses) {
			return nil, &ValidationError{
				Field:  "minimum_signatures",
				Reason: fmt.Sprintf("%d required, %d primary addresses", n, len(req.PrimaryAddresses)),
				Err:    ErrTooManySignatures,
			}
		}
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Err: ErrMissingName}
	}

	if len(req.PrimaryAddresses) == 0 {
		return nil, &ValidationError{Field: "primary_addresses", Err: ErrMissingAddress}
	}
	for i, a := range req.PrimaryAddresses {
		if a.IsZero() {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("primary_addresses[%d]", i),
				Reason: "empty address",
				Err:    ErrMissingAddress,
			}
		}
	}

	if req.ContentMap != nil {
		logger.Debug("validating content map", zap.Any("content_map", req.ContentMap))
		if err := validateContentMap(req.ContentMap); err != nil {
			return nil, err
		}
	}

	return &ValidatedRequest{req: req.clone()}, nil
}

func validateContentMap(cm map[string]string) error {
	keys := make([]string, 0, len(cm))
	for k := range cm {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := checkHex(key, MaxContentMapKeyBytes); err != nil {
			return &ValidationError{
				Field:  "content_map",
				Reason: fmt.Sprintf("key %q: %v", key, err),
				Err:    ErrInvalidContentMap,
			}
		}
		value := cm[key]
		if err := checkHex(value, MaxContentMapValueBytes); err != nil {
			return &ValidationError{
				Field:  "content_map",
				Reason: fmt.Sprintf("value %q for key %q: %v", value, key, err),
				Err:    ErrInvalidContentMap,
			}
		}
	}
	return nil
}

func checkHex(s string, maxBytes int) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("not valid hex: %w", err)
	}
	if len(b) > maxBytes {
		return fmt.Errorf("length %d bytes too long, max %d", len(b), maxBytes)
	}
	return nil
}
