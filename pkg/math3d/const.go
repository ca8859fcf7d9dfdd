package math3d

// epsilon mirrors Rust's f32::EPSILON, the threshold spec.md uses for
// "numeric degeneracy": a determinant at or below this magnitude is treated
// as zero and inversion reports failure rather than returning garbage.
const epsilon = 1.1920929e-7
