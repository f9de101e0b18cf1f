package shaders

// Physical material uniform names.
const (
	Albedo     = "albedo"
	Roughness  = "roughness"
	RoughnessX = "roughnessX"
	RoughnessY = "roughnessY"
	Metallic   = "metallic"
)

const physicalBefore = `
precision mediump float;

#define PI 3.14159265
#define EPSILON 0.00001
` + lightStructs + `
struct NormalizedLight {
  vec3 dir;
  vec3 color;
};

varying vec3 vWorldPos;
varying vec3 vNormal;
varying vec2 vUv;
varying vec3 vTangent;
varying vec3 vBitangent;

uniform vec4 albedo;
uniform float roughness;
uniform float roughnessX;
uniform float roughnessY;
uniform float metallic;

struct Material {
  vec3 diffuse;
  vec3 specular;
};

Material material;

vec3 viewDir;

bool directionalLight(in DirectionalLight light, inout NormalizedLight normalizedLight) {
  normalizedLight.color = light.color.xyz * light.color.a;
  normalizedLight.dir = light.dir;
  return true;
}

bool pointLight(in PointLight light, inout NormalizedLight normalizedLight) {
  float d = distance(vWorldPos, light.pos);
  if(light.distance < d) return false;
  normalizedLight.color = pow(saturate(1.0 - d / light.distance), light.decay) * light.color.xyz * light.color.a;
  normalizedLight.dir = normalize(vWorldPos - light.pos);
  return true;
}

bool spotLight(in SpotLight light, inout NormalizedLight normalizedLight) {
  float d = distance(light.pos, vWorldPos);
  vec3 ldir = normalize(vWorldPos - light.pos);
  float c = dot(ldir, normalize(light.dir));
  if(d > light.distance || c < light.coneCos) return false;
  float spot = smoothstep(light.coneCos, light.penumbraCos, c);
  float factor = pow(saturate(1.0 - d / light.distance), light.decay);

  normalizedLight.color = light.color.xyz * light.color.a * spot * factor;
  normalizedLight.dir = ldir;
  return true;
}
`

const physicalAfter = `
void ReflectLight(inout vec3 result, in NormalizedLight normalizedLight) {
  vec3 diffuse = DiffuseBRDF(normalizedLight);
  vec3 specular = SpecularBRDF(normalizedLight);
  vec3 irradiance = saturate(dot(vNormal, -normalizedLight.dir)) * normalizedLight.color * PI;

  result += (diffuse + specular) * irradiance;
}

vec3 lightCalc() {
  vec3 result = vec3(0.0);
  NormalizedLight normalizedLight;
  normalizedLight.dir = vec3(1.0,0.0,0.0);
  normalizedLight.color = vec3(0.0,0.0,0.0);

  for(int i=0;i<LIGHT_MAX;i++) {
    if(i >= uDirectionalNum) break;
    directionalLight(uDirectionalLight[i], normalizedLight);
    ReflectLight(result, normalizedLight);
  }
  for(int i=0;i<LIGHT_MAX;i++) {
    if(i >= uPointNum) break;
    if(pointLight(uPointLight[i], normalizedLight)) ReflectLight(result, normalizedLight);
  }
  for(int i=0;i<LIGHT_MAX;i++) {
    if(i >= uSpotNum) break;
    if(spotLight(uSpotLight[i], normalizedLight)) ReflectLight(result, normalizedLight);
  }
  for(int i=0;i<LIGHT_MAX;i++) {
    if(i >= uAmbientNum) break;
    result += uAmbientLight[i].color.xyz * uAmbientLight[i].color.a;
  }
  return result;
}

void globalValueSet() {
  material.diffuse = mix(albedo.xyz, vec3(0.0), metallic);
  material.specular = mix(vec3(0.04), albedo.xyz, metallic);

  viewDir = normalize(vWorldPos - uCameraPos);
}

void main(void){
  globalValueSet();
  vec3 result = lightCalc();
  gl_FragColor = vec4(result, albedo.a);
}
`

/**
 * @brief Assembles the physically based fragment around a BRDF. The brdf
 * must define DiffuseBRDF and SpecularBRDF; use Standard, CookTorrance or
 * Compose. An empty brdf selects Standard.
 */
func PhysicalFragment(brdf string) string {
	if brdf == "" {
		brdf = Standard
	}
	return physicalBefore + brdf + physicalAfter
}
