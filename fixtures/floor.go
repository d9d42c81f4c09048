package fixtures

import "math"

//wasm:assert_return (invoke "h" (f32.const 2.7)) (f32.const 2)
//wasm:assert_return (invoke "h" (f32.const -2.3)) (f32.const -3)
//wasm:assert_return (invoke "h" (f32.const nan)) (f32.const nan)
//wasm:assert_return (invoke "h" (f32.const inf)) (f32.const inf)
//wasm:assert_return (invoke "h" (f32.const -inf)) (f32.const -inf)
func Floor(a float32) float32 {
	return float32(math.Floor(float64(a)))
}
