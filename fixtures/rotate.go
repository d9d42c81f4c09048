package fixtures

// RotateLeft rotates a left by b bits. Only the low 5 bits of b are used,
// so any b, negative included, is well defined.
//
//wasm:assert_return (invoke "f" (i32.const 1) (i32.const 1)) (i32.const 2)
//wasm:assert_return (invoke "f" (i32.const 0x80000000) (i32.const 1)) (i32.const 1)
//wasm:assert_return (invoke "f" (i32.const 0x12345678) (i32.const 36)) (i32.const 0x23456781)
//wasm:assert_return (invoke "f" (i32.const 1) (i32.const -1)) (i32.const 0x80000000)
//wasm:assert_return (invoke "f" (i32.const -7) (i32.const 0)) (i32.const -7)
func RotateLeft(a, b int32) int32 {
	u := uint32(a)
	return int32(u<<(uint32(b)&31) | u>>(uint32(-b)&31))
}

// RotateRight rotates a right by b bits, the mirror of RotateLeft.
//
//wasm:assert_return (invoke "g" (i32.const 2) (i32.const 1)) (i32.const 1)
//wasm:assert_return (invoke "g" (i32.const 1) (i32.const 1)) (i32.const 0x80000000)
//wasm:assert_return (invoke "g" (i32.const 0x12345678) (i32.const 4)) (i32.const 0x81234567)
//wasm:assert_return (invoke "g" (i32.const 0x80000000) (i32.const -1)) (i32.const 1)
//wasm:assert_return (invoke "g" (i32.const 99) (i32.const 32)) (i32.const 99)
func RotateRight(a, b int32) int32 {
	u := uint32(a)
	return int32(u>>(uint32(b)&31) | u<<(uint32(-b)&31))
}
