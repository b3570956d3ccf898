package registry

// Builtin returns the Tenstorrent model registrations, in the order
// they must be submitted. The class paths point into the tt-metal
// tree on the server side; nothing here is imported locally.
func Builtin() []Entry {
	return []Entry{
		{
			Name:      "TTLlamaForCausalLM",
			ClassPath: "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM",
		},
		{
			Name:      "TTQwen2ForCausalLM",
			ClassPath: "models.tt_transformers.tt.generator_vllm:Qwen2ForCausalLM",
		},
		{
			Name:      "TTMllamaForConditionalGeneration",
			ClassPath: "models.tt_transformers.tt.multimodal.llama_vision.generator_vllm:MllamaForConditionalGeneration",
		},
	}
}
