// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	fperrors "github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code fperrors.ErrorCode) int {
	switch code {
	case fperrors.ErrCodeInvalidRequest, fperrors.ErrCodeUnknownProduct:
		return http.StatusBadRequest
	case fperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case fperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case fperrors.ErrCodeInfeasible, fperrors.ErrCodeUnbounded:
		return http.StatusUnprocessableEntity
	case fperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case fperrors.ErrCodeUnavailable, fperrors.ErrCodeSolverUnavailable:
		return http.StatusServiceUnavailable
	case fperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case fperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code fperrors.ErrorCode) bool {
	switch code {
	case fperrors.ErrCodeTimeout,
		fperrors.ErrCodeUnavailable,
		fperrors.ErrCodeRateLimitExceeded,
		fperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code fperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err as a structured error response. The status
// and code come from the first StructuredError in err's chain; joined errors
// contribute their messages as details.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	code := fperrors.CodeOf(err)
	message := fallbackMessage
	var details map[string]any

	var se *fperrors.StructuredError
	if stderrors.As(err, &se) {
		if se.Message != "" {
			message = se.Message
		}
		details = mergeDetails(details, se.Context)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
	} else if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		details = mergeDetails(details, map[string]any{"errors": msgs})
	}

	details = mergeDetails(details, extraDetails)

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), details)
}

func mergeDetails(base, extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]any, len(extra))
	}
	for k, v := range extra {
		base[k] = v
	}
	return base
}
